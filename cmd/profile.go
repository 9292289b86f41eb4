package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	profilerender "github.com/bnema/walletdash/internal/adapters/render/profile"
	"github.com/bnema/walletdash/internal/domain"
	"github.com/spf13/cobra"
	"go.openly.dev/pointy"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit your profile",
	}

	cmd.AddCommand(newProfileShowCmd(app), newProfileUpdateCmd(app))

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	var refresh bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show your profile and wallet balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.initialize(cmd.Context()); err != nil {
				return err
			}
			if !app.store.CheckSession() {
				return errNoSession()
			}

			if refresh || app.store.Snapshot().User == nil {
				if err := waitForHydration(cmd, app, asJSON); err != nil {
					return err
				}
			}

			session := app.store.Snapshot()
			if refresh && session.ProfileErr != nil {
				if _, err := app.store.RefreshProfile(cmd.Context()); err != nil {
					return err
				}
				session = app.store.Snapshot()
			}
			if session.User == nil {
				if session.ProfileErr != nil {
					return fmt.Errorf("load profile: %w", session.ProfileErr)
				}
				return fmt.Errorf("load profile: %w", domain.ErrNotAuthenticated)
			}

			return writeProfile(cmd, app, *session.User, asJSON)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the profile from the API instead of the local cache")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newProfileUpdateCmd(app *app) *cobra.Command {
	var firstName string
	var lastName string
	var email string
	var imagePath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields; omitted flags are left unchanged",
		RunE: func(cmd *cobra.Command, _ []string) error {
			update := domain.ProfileUpdate{}
			if cmd.Flags().Changed("first-name") {
				update.FirstName = pointy.String(firstName)
			}
			if cmd.Flags().Changed("last-name") {
				update.LastName = pointy.String(lastName)
			}
			if cmd.Flags().Changed("email") {
				update.Email = pointy.String(email)
			}
			if imagePath != "" {
				content, err := os.ReadFile(imagePath)
				if err != nil {
					return fmt.Errorf("read profile image: %w", err)
				}
				update.ProfileImage = &domain.ImageUpload{Filename: filepath.Base(imagePath), Content: content}
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to update: set at least one of --first-name, --last-name, --email, --image")
			}

			if err := app.initialize(cmd.Context()); err != nil {
				return err
			}
			if !app.store.CheckSession() {
				return errNoSession()
			}
			if err := waitForHydration(cmd, app, true); err != nil {
				return err
			}

			profile, err := app.store.EditProfile(cmd.Context(), update)
			if err != nil {
				return err
			}
			app.notifications.Success("Profile updated")

			return writeProfile(cmd, app, profile, asJSON)
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "New first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "New last name")
	cmd.Flags().StringVar(&email, "email", "", "New email address")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a new profile image")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeProfile(cmd *cobra.Command, app *app, profile domain.UserProfile, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, profile)
	}

	rendered, err := app.profileRenderer(profile, profilerender.RenderOptions{BaseURL: app.baseURL, Now: app.now()})
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
