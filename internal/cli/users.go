package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/facekeeper/internal/common"
)

var usersLatest bool

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		if usersLatest {
			return runUsersLatest(cmd)
		}
		return runUsers(cmd)
	},
}

func init() {
	usersCmd.Flags().BoolVar(&usersLatest, "latest", false, "show only the most recently registered user")
	rootCmd.AddCommand(usersCmd)
}

func runUsers(cmd *cobra.Command) error {
	records, err := app.UserInfo.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No registered users.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tEMAIL\tTELEPHONE\tREGISTERED")
	fmt.Fprintln(w, "----\t-----\t---------\t----------")

	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			rec.FullName, rec.Email, rec.Telephone,
			rec.RegisteredAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func runUsersLatest(cmd *cobra.Command) error {
	rec, err := app.UserInfo.Latest(cmd.Context())
	if errors.Is(err, common.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(), "No registered users.")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:       %s\n", rec.FullName)
	fmt.Fprintf(out, "Email:      %s\n", rec.Email)
	fmt.Fprintf(out, "Telephone:  %s\n", rec.Telephone)
	fmt.Fprintf(out, "Registered: %s\n", rec.RegisteredAt.Local().Format("2006-01-02 15:04"))
	return nil
}
