package cmd

import (
	"fmt"
	"io"

	"github.com/bnema/walletdash/internal/domain"
	"github.com/spf13/cobra"
)

const skipWiringAnnotation = "walletdash/skip-wiring"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var opts wireOptions
	app := &app{}
	wired := false

	rootCmd := &cobra.Command{
		Use:           "wd",
		Short:         "walletdash (wd): sign in and manage your wallet dashboard profile",
		Long:          "wd (walletdash) keeps a wallet dashboard session in a local cache, loads and edits your profile, and checks which dashboard pages your session may open.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configureLogging(cmd.ErrOrStderr(), opts.verbose)
			if cmd.Annotations[skipWiringAnnotation] != "" {
				return nil
			}

			next, err := wireApp(opts)
			if err != nil {
				return err
			}
			*app = *next
			wired = true
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if !wired {
				return
			}
			app.close()
			printNotifications(cmd.ErrOrStderr(), app.notifications.List())
		},
	}

	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "Keep the session in memory only")

	rootCmd.AddCommand(
		newVersionCmd(),
		newSignupCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newSessionCmd(app),
		newProfileCmd(app),
		newOpenCmd(app),
	)

	return rootCmd
}

func printNotifications(output io.Writer, notifications []domain.Notification) {
	for _, notification := range notifications {
		prefix := "info"
		switch notification.Kind {
		case domain.NotificationSuccess:
			prefix = "ok"
		case domain.NotificationError:
			prefix = "error"
		case domain.NotificationWarning:
			prefix = "warning"
		}
		_, _ = fmt.Fprintf(output, "[%s] %s\n", prefix, notification.Message)
	}
}
