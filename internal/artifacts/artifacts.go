// Package artifacts persists the per-user face artifacts: one cropped face
// image for later display and one descriptor vector file, both keyed by the
// registered email. The default backend is a local directory tree; an S3
// backend exists for shared deployments.
package artifacts

import (
	"context"
	"image"

	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// Store saves and loads face artifacts. Save methods return the reference
// that goes into the user record; LoadDescriptor accepts such a reference.
type Store interface {
	SaveImage(ctx context.Context, email string, img image.Image) (string, error)
	SaveDescriptor(ctx context.Context, email string, d *vision.Descriptor) (string, error)
	LoadDescriptor(ctx context.Context, ref string) (*vision.Descriptor, error)
}

// Artifact naming, shared by both backends.
const (
	imagesDir      = "user_faces"
	descriptorsDir = "user_faces_encoding"
)

func imageName(email string) string      { return email + ".jpg" }
func descriptorName(email string) string { return email + "_encoding.bin" }
