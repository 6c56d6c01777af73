package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dlyog/dl-creator-cli/internal/domain"
)

const skipWireAnnotation = "dlc.skip-wire"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	app := &app{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "dlc",
		Short:         "Driving license client (dlc): sign in, manage your license, chat with the assistant",
		Long:          "dlc is a terminal client for the driving-license service. It keeps your session under ~/.dlc, checks and creates your license, and talks to the license assistant.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipWireAnnotation] == "true" {
				return nil
			}
			return app.wire(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.router.Visit(domain.RouteHome)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newLicenseCmd(app),
		newChatCmd(app),
	)

	return rootCmd
}
