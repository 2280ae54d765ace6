package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	signinPreviewFile string
	signinDelay       time.Duration
)

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in by matching a webcam capture against registered faces",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignIn(cmd, signinPreviewFile, signinDelay)
	},
}

func init() {
	signinCmd.Flags().StringVar(&signinPreviewFile, "preview-file", "", "write live preview frames (base64 PNG) to this file")
	signinCmd.Flags().DurationVar(&signinDelay, "delay", 3*time.Second, "time to face the camera before the capture")
	rootCmd.AddCommand(signinCmd)
}

func runSignIn(cmd *cobra.Command, previewFile string, delay time.Duration) error {
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

	rec, similarity, err := app.SignIn.SignIn(ctx, cam)
	if err != nil {
		return explain(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s <%s> (similarity %.2f).\n",
		rec.FullName, rec.Email, similarity)
	return nil
}
