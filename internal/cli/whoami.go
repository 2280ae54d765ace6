package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/facekeeper/internal/common"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWhoami(cmd)
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command) error {
	ctx := cmd.Context()

	sess, err := app.Sessions.Get(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return errors.New("not signed in")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (session expires %s)\n",
		sess.SubjectEmail, sess.ExpiresAt.Local().Format("2006-01-02 15:04"))

	// The full record is available after a face sign-in; registration
	// alone only leaves the session.
	rec, err := app.UserInfo.Recognized(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return err
	}
	if rec.Email != sess.SubjectEmail {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  Name:      %s\n", rec.FullName)
	fmt.Fprintf(cmd.OutOrStdout(), "  Telephone: %s\n", rec.Telephone)
	if !rec.RegisteredAt.IsZero() {
		fmt.Fprintf(cmd.OutOrStdout(), "  Registered: %s\n", rec.RegisteredAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
