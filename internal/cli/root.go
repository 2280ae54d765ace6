// Package cli implements the FaceKeeper command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/facekeeper/internal/config"
	"github.com/dmitrijs2005/facekeeper/internal/logging"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// app is the shared application instance built before any subcommand
	// runs and released after it finishes.
	app *App

	configFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "facekeeper",
	Short:   "Face registration and sign-in from a webcam",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.NewSlogLogger(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		// config.LoadConfig picks up -c/-config from os.Args itself; the
		// cobra flag exists so the flag parses and shows in help.
		cfg := config.LoadConfig()

		var err error
		app, err = NewApp(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize application: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			app.Close()
		}
	},
}

// Execute runs the CLI until the command finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a JSON configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
