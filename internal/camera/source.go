// Package camera provides frame acquisition from a webcam and the background
// preview loop. A Source is exclusively owned by the command that opened it
// and must be closed when the command exits so the device handle is never
// leaked across screens.
package camera

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/dmitrijs2005/facekeeper/internal/common"
)

// Source yields raw video frames.
type Source interface {
	// Read returns the newest frame. A device failure is reported as
	// common.ErrCameraUnavailable (wrapped).
	Read(ctx context.Context) (image.Image, error)
	Close() error
}

const (
	frameWidth  = 640
	frameHeight = 480
)

// Webcam is a gocv-backed Source.
type Webcam struct {
	cap *gocv.VideoCapture
	mat gocv.Mat
}

// OpenWebcam tries the given device indexes in order and returns a Source
// for the first camera that opens. With no indexes, devices 0 and 1 are
// tried, matching the usual built-in/external camera layout.
func OpenWebcam(indexes ...int) (*Webcam, error) {
	if len(indexes) == 0 {
		indexes = []int{0, 1}
	}

	for _, idx := range indexes {
		cap, err := gocv.VideoCaptureDevice(idx)
		if err != nil {
			continue
		}
		if !cap.IsOpened() {
			cap.Close()
			continue
		}
		cap.Set(gocv.VideoCaptureFrameWidth, frameWidth)
		cap.Set(gocv.VideoCaptureFrameHeight, frameHeight)
		return &Webcam{cap: cap, mat: gocv.NewMat()}, nil
	}

	return nil, fmt.Errorf("%w: no device could be opened (tried %v)", common.ErrCameraUnavailable, indexes)
}

func (w *Webcam) Read(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !w.cap.Read(&w.mat) || w.mat.Empty() {
		return nil, fmt.Errorf("%w: failed to grab frame", common.ErrCameraUnavailable)
	}

	img, err := w.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return img, nil
}

func (w *Webcam) Close() error {
	w.mat.Close()
	return w.cap.Close()
}
