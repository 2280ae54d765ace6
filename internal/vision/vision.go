// Package vision defines the face-processing contracts: locating a face
// region in a frame, extracting a fixed-length descriptor, and comparing
// descriptors. Concrete providers live in subpackages.
package vision

import (
	"context"
	"image"
)

// DescriptorSize is the length of a face descriptor vector.
const DescriptorSize = 128

// Descriptor is a fixed-length numeric vector summarizing the
// identity-relevant features of one face.
type Descriptor [DescriptorSize]float32

// FacePadding is added to each side of a raw detection so downstream
// cropping captures the full face.
const FacePadding = 20

// Region is a rectangular sub-area of an image where a face was found.
type Region struct {
	Rect       image.Rectangle
	Confidence float64
}

// Locator finds at most one face region in a frame.
//
// Implementations must pad the raw bounding box by FacePadding on each side,
// clamped to the image bounds. When the underlying detector reports several
// faces, only the first detection is used. A miss is reported through the
// boolean, not through the error.
type Locator interface {
	Locate(ctx context.Context, img image.Image) (Region, bool, error)
}

// Extractor produces a descriptor for the face in the given image.
//
// Implementations run their own face detection before encoding, independent
// of any Locator pass: a frame can pass Locate yet still yield no descriptor
// here. Absence of an encodable face returns (nil, nil), never an error.
type Extractor interface {
	Extract(ctx context.Context, img image.Image) (*Descriptor, error)
}

// Provider combines both face operations and owns the underlying resources
// (native models, remote connections).
type Provider interface {
	Locator
	Extractor
	Close() error
}

// PadRegion grows r by pad pixels on every side, clamped to bounds.
func PadRegion(r image.Rectangle, pad int, bounds image.Rectangle) image.Rectangle {
	return image.Rect(r.Min.X-pad, r.Min.Y-pad, r.Max.X+pad, r.Max.Y+pad).Intersect(bounds)
}
