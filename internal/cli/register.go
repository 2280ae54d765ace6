package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/facekeeper/internal/camera"
	"github.com/dmitrijs2005/facekeeper/internal/imagex"
)

var (
	registerPreviewFile string
	registerDelay       time.Duration
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Capture a face from the webcam and register the pending sign-up",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegister(cmd, registerPreviewFile, registerDelay)
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerPreviewFile, "preview-file", "", "write live preview frames (base64 PNG) to this file")
	registerCmd.Flags().DurationVar(&registerDelay, "delay", 3*time.Second, "time to face the camera before the capture")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, previewFile string, delay time.Duration) error {
	ctx := cmd.Context()

	cam, err := app.OpenCamera()
	if err != nil {
		return explain(err)
	}
	defer cam.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "Look at the camera...")
	if err := previewCountdown(ctx, cam, previewFile, delay); err != nil {
		return err
	}

	rec, err := app.Registration.Register(ctx, cam)
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s>. You are signed in.\n", rec.FullName, rec.Email)
	return nil
}

// previewCountdown runs the live preview, when requested, for the delay
// window and stops it before the capture read. The camera handle is never
// read from two goroutines at once.
func previewCountdown(ctx context.Context, cam camera.Source, previewFile string, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	var done <-chan struct{}
	previewCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if previewFile != "" {
		sink := func(b64png string) {
			_ = os.WriteFile(previewFile, []byte(b64png), 0o660)
		}
		done = camera.StartPreview(previewCtx, cam, imagex.CaptureSize, sink, app.Logger)
	}

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		if done != nil {
			cancel()
			<-done
		}
		return ctx.Err()
	}

	cancel()
	if done != nil {
		<-done
	}
	return nil
}
