package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/spf13/cobra"
)

func newSignupCmd(app *app) *cobra.Command {
	var request domain.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a dashboard account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.store.Signup(cmd.Context(), request)
			if err != nil {
				return err
			}

			email := request.Email
			if result.User != nil && result.User.Email != "" {
				email = result.User.Email
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s. Run `wd login` to sign in.\n", email)
			return err
		},
	}

	cmd.Flags().StringVar(&request.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&request.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&request.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&request.Password, "password", "", "Password")
	cmd.Flags().StringVar(&request.ConfirmPassword, "confirm-password", "", "Password confirmation")

	return cmd
}

func newLoginCmd(app *app) *cobra.Command {
	var credentials domain.Credentials
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and cache the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				password, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				credentials.Password = password
			}

			if _, err := app.store.Login(cmd.Context(), credentials); err != nil {
				return err
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading profile...", func(context.Context) error {
				app.store.Wait()
				return nil
			}); err != nil {
				return err
			}

			return writeLoginSummary(cmd.OutOrStdout(), app.store.Snapshot())
		},
	}

	cmd.Flags().StringVar(&credentials.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&credentials.Password, "password", "", "Password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear the cached token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.store.Logout(cmd.Context())
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return err
		},
	}
}

func writeLoginSummary(output io.Writer, session domain.Session) error {
	if session.User == nil {
		message := "Logged in"
		if session.ProfileErr != nil {
			message += fmt.Sprintf(" (profile unavailable: %v)", session.ProfileErr)
		}
		_, err := fmt.Fprintln(output, message)
		return err
	}

	name := session.User.FullName()
	if name == "" {
		name = session.User.Email
	}
	_, err := fmt.Fprintf(output, "Logged in as %s <%s>\n", name, session.User.Email)
	return err
}

func readPassword(input io.Reader) (string, error) {
	reader := bufio.NewReader(input)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
