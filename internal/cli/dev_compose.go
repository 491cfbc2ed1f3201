// Package cli — dev_compose.go implements the "janus dev compose"
// command.
//
// Compose exports the stack definition as a docker-compose file, for
// users who want to run the stack under compose (or hand it to CI)
// instead of the janus lifecycle commands. The export mirrors what
// "janus dev up" would create: same container names, network,
// volume, and environment.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/model"
	"github.com/janus-labs/janus/internal/stack"
)

// composeFlags holds the flag values for the dev compose command.
type composeFlags struct {
	output  string // --output: file path, "-" for stdout
	version string // --version: app image tag override
}

// NewDevComposeCommand creates the "dev compose" cobra command.
func NewDevComposeCommand() *cobra.Command {
	flags := &composeFlags{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Export the stack as a docker-compose file",
		Long: `Export the stack definition as docker-compose YAML.

The exported file reproduces the stack "janus dev up" creates: the
same container names, network, Redis data volume, and app
environment.

Examples:
  janus dev compose
  janus dev compose --output docker-compose.yml`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevCompose(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "-", "Output file (\"-\" for stdout)")
	cmd.Flags().StringVar(&flags.version, "version", "", "App image version tag (default: git describe)")

	return cmd
}

// runDevCompose renders and writes the compose file.
func runDevCompose(_ context.Context, flags *composeFlags) error {
	cfg, err := loadWorkspaceConfig()
	if err != nil {
		return err
	}

	version := flags.version
	if version == "" {
		if version, err = stack.Version(cfg.WorkspacePath); err != nil {
			version = "latest"
		}
	}

	data, err := stack.ExportCompose(cfg, version, BuildArgs(version, cfg.UVVersion))
	if err != nil {
		return err
	}

	if flags.output == "-" {
		fmt.Print(string(data))
		return nil
	}

	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write compose file", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", flags.output)
	return nil
}
