// Package goface implements the vision contracts on top of the dlib-backed
// go-face recognizer. The same native recognizer serves both the locator and
// the extractor, but each call runs its own detection pass.
package goface

import (
	"bytes"
	"context"
	"fmt"
	"image"

	face "github.com/Kagami/go-face"

	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// Provider wraps a go-face Recognizer. Not safe for concurrent use; the
// capture commands are serialized by the shell, which is enough.
type Provider struct {
	rec *face.Recognizer
}

// New opens the native recognizer using the model files in modelsDir.
// Call EnsureModels first if the models may be missing.
func New(modelsDir string) (*Provider, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("init face recognizer: %w", err)
	}
	return &Provider{rec: rec}, nil
}

func (p *Provider) Close() error {
	p.rec.Close()
	return nil
}

// Locate detects faces on the frame and returns the first detection padded
// by vision.FacePadding, clamped to the frame bounds. Zero detections is a
// miss, not an error.
func (p *Provider) Locate(ctx context.Context, img image.Image) (vision.Region, bool, error) {
	data, err := encodeJPEG(img)
	if err != nil {
		return vision.Region{}, false, err
	}

	faces, err := p.rec.Recognize(data)
	if err != nil {
		return vision.Region{}, false, fmt.Errorf("detect faces: %w", err)
	}
	if len(faces) == 0 {
		return vision.Region{}, false, nil
	}

	rect := vision.PadRegion(faces[0].Rectangle, vision.FacePadding, img.Bounds())
	return vision.Region{Rect: rect, Confidence: 1}, true, nil
}

// Extract runs an independent detection-and-encoding pass on img and returns
// the descriptor of the single face found, or nil when the internal detector
// finds no encodable face.
func (p *Provider) Extract(ctx context.Context, img image.Image) (*vision.Descriptor, error) {
	data, err := encodeJPEG(img)
	if err != nil {
		return nil, err
	}

	f, err := p.rec.RecognizeSingle(data)
	if err != nil {
		return nil, fmt.Errorf("encode face: %w", err)
	}
	if f == nil {
		return nil, nil
	}

	d := vision.Descriptor(f.Descriptor)
	return &d, nil
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imagex.EncodeJPEG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
