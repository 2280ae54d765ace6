package camera

import (
	"context"
	"time"

	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/logging"
)

// previewInterval caps the preview loop at roughly 30 fps.
const previewInterval = 33 * time.Millisecond

// FrameSink receives one preview frame as base64 PNG. Sinks are called
// synchronously from the preview goroutine; a slow sink simply means frames
// are dropped, never queued.
type FrameSink func(b64png string)

// StartPreview launches a background loop that pulls the newest frame from
// src, center-crops it to size x size, encodes it for display and hands it
// to sink. The loop honors ctx cancellation before each frame pull and the
// returned channel is closed once the loop has fully stopped, so the caller
// can release the camera safely afterwards.
func StartPreview(ctx context.Context, src Source, size int, sink FrameSink, log logging.Logger) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(previewInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			frame, err := src.Read(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn(ctx, "preview frame read failed", "error", err)
				continue
			}

			b64, err := imagex.ToBase64PNG(imagex.CenterSquare(frame, size))
			if err != nil {
				log.Warn(ctx, "preview frame encode failed", "error", err)
				continue
			}

			sink(b64)
		}
	}()

	return done
}
