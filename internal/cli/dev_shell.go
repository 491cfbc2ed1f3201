// Package cli — dev_shell.go implements the "janus dev shell" command.
//
// Shell execs into the app container, either running the configured
// interactive shell or an explicit command given after "--". The
// command's exit status inside the container becomes this process's
// exit status verbatim, so scripts and CI can wrap container commands
// transparently:
//
//	janus dev shell -- pytest tests/   # exits with pytest's code
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/docker"
	"github.com/janus-labs/janus/internal/model"
)

// NewDevShellCommand creates the "dev shell" cobra command.
func NewDevShellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell [-- command...]",
		Short: "Open a shell in the app container",
		Long: `Exec into the running app container.

Without arguments, runs the configured interactive shell. Arguments
after "--" are run as a command instead, and its exit status is
propagated as this command's exit status.

Examples:
  janus dev shell
  janus dev shell -- pytest tests/
  janus dev shell -- uv run python -c "print('hi')"`,

		Args: cobra.ArbitraryArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevShell(cmd.Context(), args)
		},
	}

	return cmd
}

// runDevShell execs into the app container and propagates the exit
// status.
func runDevShell(ctx context.Context, args []string) error {
	cli, err := connectDocker(ctx)
	if err != nil {
		return err
	}
	defer cli.Close()

	cfg, err := loadWorkspaceConfig()
	if err != nil {
		return err
	}

	st, err := findStack(ctx, cli, cfg.Name)
	if err != nil {
		return err
	}
	appInfo := st.ContainerByRole(model.RoleApp)
	if appInfo == nil {
		return model.NewCLIError(model.ExitStackNotFound,
			fmt.Sprintf("stack %s has no app container", cfg.Name))
	}
	if appInfo.Status != "running" {
		return model.NewCLIError(model.ExitStackNotFound,
			fmt.Sprintf("app container %s is not running (run 'janus dev up' first)", appInfo.ContainerName))
	}

	cmdArgs := args
	if len(cmdArgs) == 0 {
		cmdArgs = cfg.Shell
	}

	exitCode, err := docker.ExecInteractive(ctx, appInfo.ContainerName, cfg.Workdir, cmdArgs)
	if err != nil {
		return err
	}

	// The inner command's exit status is the contract here, so exit
	// directly instead of routing through the CLIError taxonomy.
	if exitCode != 0 {
		os.Exit(exitCode)
	}
	return nil
}
