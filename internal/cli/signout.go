package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Sessions.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signoutCmd)
}
