// Package cli — dev_restart.go implements the "janus dev restart"
// command.
//
// Restart is down followed by up: containers are removed and
// recreated, so a freshly built image is picked up. The data volume
// and its recorded time series are kept.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDevRestartCommand creates the "dev restart" cobra command.
func NewDevRestartCommand() *cobra.Command {
	flags := &upFlags{}

	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Restart the development stack",
		Long: `Restart the stack: remove its containers and bring it back up.

Equivalent to "janus dev down" followed by "janus dev up". The Redis
data volume is kept, and recreating the app container picks up a
freshly built image.

Examples:
  janus dev restart
  janus dev restart --version 1.2.0`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevRestart(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.version, "version", "", "App image version tag (default: git describe)")

	return cmd
}

// runDevRestart tears the stack down (keeping the volume) and brings
// it back up.
func runDevRestart(ctx context.Context, flags *upFlags) error {
	if err := runDevDown(ctx, &downFlags{volumes: false}); err != nil {
		return err
	}
	return runDevUp(ctx, flags)
}
