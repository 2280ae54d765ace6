// Package imagex contains image helpers shared by capture, preview and the
// artifact store: fixed-square cropping, scaling and preview encoding.
package imagex

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// CaptureSize is the fixed square side used for capture and preview.
const CaptureSize = 299

// Crop returns the part of img covered by rect.
func Crop(img image.Image, rect image.Rectangle) image.Image {
	rect = rect.Intersect(img.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), img, rect.Min, draw.Src)
	return out
}

// Resize scales img to width x height.
func Resize(img image.Image, width, height int) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out
}

// CenterSquare crops a size x size square from the center of img. Frames
// smaller than the square in either dimension are resized to size x size
// instead of cropped.
func CenterSquare(img image.Image, size int) image.Image {
	b := img.Bounds()
	if b.Dx() < size || b.Dy() < size {
		return Resize(img, size, size)
	}

	x0 := b.Min.X + (b.Dx()-size)/2
	y0 := b.Min.Y + (b.Dy()-size)/2
	return Crop(img, image.Rect(x0, y0, x0+size, y0+size))
}

// ToBase64PNG encodes img as PNG and returns the base64 form used for
// on-screen preview.
func ToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// EncodeJPEG writes img to w as JPEG with default quality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, nil); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}
