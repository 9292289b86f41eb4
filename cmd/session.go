package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	profilerender "github.com/bnema/walletdash/internal/adapters/render/profile"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/spf13/cobra"
)

type sessionOutput struct {
	State           domain.SessionState `json:"state"`
	IsAuthenticated bool                `json:"isAuthenticated"`
	Token           string              `json:"token,omitempty"`
	Loading         bool                `json:"loading"`
	User            *domain.UserProfile `json:"user"`
	ProfileError    string              `json:"profileError,omitempty"`
}

func newSessionCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.initialize(cmd.Context()); err != nil {
				return err
			}
			if err := waitForHydration(cmd, app, asJSON); err != nil {
				return err
			}

			session := app.store.Snapshot()
			if asJSON {
				return writeJSON(cmd, newSessionOutput(session))
			}

			rendered, err := app.sessionRenderer(session, profilerender.RenderOptions{BaseURL: app.baseURL, Now: app.now()})
			if err != nil {
				return fmt.Errorf("render session: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.AddCommand(newSessionTokenCmd(app))

	return cmd
}

func newSessionTokenCmd(app *app) *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print the cached bearer token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.initialize(cmd.Context()); err != nil {
				return err
			}
			if !app.store.CheckSession() {
				return errNoSession()
			}

			token := app.store.Snapshot().Token
			if copyToClipboard {
				if err := app.copyToClipboard(token); err != nil {
					return fmt.Errorf("copy token to clipboard: %w", err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Token copied to clipboard")
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy the token to the clipboard instead of printing it")

	return cmd
}

func newSessionOutput(session domain.Session) sessionOutput {
	output := sessionOutput{
		State:           session.State,
		IsAuthenticated: session.IsAuthenticated,
		Loading:         session.Loading,
		User:            session.User,
	}
	if session.Token != "" {
		output.Token = profilerender.MaskToken(session.Token)
	}
	if session.ProfileErr != nil {
		output.ProfileError = session.ProfileErr.Error()
	}
	return output
}

// waitForHydration blocks until the background profile fetch started by
// initialize has settled.
func waitForHydration(cmd *cobra.Command, app *app, quiet bool) error {
	if !app.store.Snapshot().Loading {
		return nil
	}

	wait := func(context.Context) error {
		app.store.Wait()
		return nil
	}
	if quiet {
		return wait(cmd.Context())
	}
	return runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading profile...", wait)
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func errNoSession() error {
	return fmt.Errorf("no active session, run `wd login` first: %w", domain.ErrNotAuthenticated)
}
