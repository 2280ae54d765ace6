package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/facekeeper/internal/common"
	"github.com/dmitrijs2005/facekeeper/internal/models"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Collect identity details for the next registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSignup(cmd)
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
}

func runSignup(cmd *cobra.Command) error {
	reader := bufio.NewReader(cmd.InOrStdin())

	prompt := func(label string) (string, error) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	details := models.SignupDetails{}
	var err error
	if details.FullName, err = prompt("Full name"); err != nil {
		return err
	}
	if details.Email, err = prompt("Email"); err != nil {
		return err
	}
	if details.Telephone, err = prompt("Telephone"); err != nil {
		return err
	}

	if err := app.Signup.Save(cmd.Context(), details); err != nil {
		switch {
		case errors.Is(err, models.ErrFieldsRequired):
			fmt.Fprintln(os.Stderr, "All fields are required.")
		case errors.Is(err, models.ErrInvalidEmail):
			fmt.Fprintln(os.Stderr, "The email address is not valid.")
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Sign-up details saved. Run 'facekeeper register' to capture your face.")
	return nil
}

// explain maps workflow sentinels to user-facing messages; unknown errors
// pass through unchanged.
func explain(err error) error {
	switch {
	case errors.Is(err, common.ErrCameraUnavailable):
		return errors.New("no working camera found, check that a webcam is connected")
	case errors.Is(err, common.ErrNoFaceDetected):
		return errors.New("no face detected, face the camera and try again")
	case errors.Is(err, common.ErrEncodingFailed):
		return errors.New("unable to process face, adjust lighting and try again")
	case errors.Is(err, common.ErrMissingSignupData):
		return errors.New("sign-up details are missing, run 'facekeeper signup' first")
	case errors.Is(err, common.ErrNoRegisteredUsers):
		return errors.New("no registered users yet, run 'facekeeper register' first")
	case errors.Is(err, common.ErrNoMatch):
		return errors.New("face not recognized")
	default:
		return err
	}
}
