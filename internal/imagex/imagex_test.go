package imagex

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCenterSquare_CropsLargeFrame(t *testing.T) {
	// 640x480 camera frame, the usual case.
	got := CenterSquare(uniformImage(640, 480, color.White), CaptureSize)
	b := got.Bounds()
	assert.Equal(t, CaptureSize, b.Dx())
	assert.Equal(t, CaptureSize, b.Dy())
}

func TestCenterSquare_ResizesSmallFrame(t *testing.T) {
	got := CenterSquare(uniformImage(160, 120, color.White), CaptureSize)
	b := got.Bounds()
	assert.Equal(t, CaptureSize, b.Dx())
	assert.Equal(t, CaptureSize, b.Dy())
}

func TestCrop_ClampsToBounds(t *testing.T) {
	got := Crop(uniformImage(100, 100, color.White), image.Rect(80, 80, 200, 200))
	b := got.Bounds()
	assert.Equal(t, 20, b.Dx())
	assert.Equal(t, 20, b.Dy())
}

func TestToBase64PNG_DecodesBack(t *testing.T) {
	s, err := ToBase64PNG(uniformImage(8, 8, color.RGBA{R: 255, A: 255}))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestEncodeJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeJPEG(&buf, uniformImage(16, 16, color.Black)))

	img, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}
