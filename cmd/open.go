package cmd

import (
	"fmt"

	"github.com/bnema/walletdash/internal/application"
	"github.com/spf13/cobra"
)

func newOpenCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a dashboard page against the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.initialize(cmd.Context()); err != nil {
				return err
			}

			page, err := app.navigator.Navigate(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, newPageOutput(page))
			}
			return writePage(cmd, app, page)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

type pageOutput struct {
	Path            string   `json:"path"`
	Redirects       []string `json:"redirects,omitempty"`
	IsAuthenticated bool     `json:"isAuthenticated"`
	IsAdmin         bool     `json:"isAdmin"`
	LoadError       string   `json:"loadError,omitempty"`
}

func newPageOutput(page application.Page) pageOutput {
	output := pageOutput{
		Path:            page.Path,
		Redirects:       page.Redirects,
		IsAuthenticated: page.Data.IsAuthenticated,
		IsAdmin:         page.Data.IsAdmin,
	}
	if page.LoadErr != nil {
		output.LoadError = page.LoadErr.Error()
	}
	return output
}

func writePage(cmd *cobra.Command, app *app, page application.Page) error {
	out := cmd.OutOrStdout()
	for _, hop := range page.Redirects {
		if _, err := fmt.Fprintf(out, "redirect -> %s\n", hop); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "page: %s\n", page.Path); err != nil {
		return err
	}

	if page.LoadErr != nil {
		app.notifications.Warning(fmt.Sprintf("page data unavailable: %v", page.LoadErr))
		return nil
	}
	if page.Profile == nil {
		return nil
	}

	return writeProfile(cmd, app, *page.Profile, false)
}
