// Package cli — dev.go defines the "janus dev" command group and the
// helpers its subcommands share.
//
// Every dev subcommand starts the same way: connect to Docker, load the
// stack config from the current workspace, and (for lifecycle commands)
// look up the stack's containers by their janus labels. Those steps
// live here so the subcommand files stay focused on their own
// orchestration.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/docker"
	"github.com/janus-labs/janus/internal/model"
	"github.com/janus-labs/janus/internal/stack"
)

// NewDevCommand creates the "dev" parent command. It performs no
// action itself; the subcommands carry the functionality.
func NewDevCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Manage the local development stack",
		Long: `Manage the Docker development stack for the current workspace.

The stack consists of an app container built from the project
Dockerfile and a Redis container with the TimeSeries module, joined on
a dedicated bridge network. Stack state lives entirely in Docker
labels; there is no state file.`,
	}

	cmd.AddCommand(NewDevBuildCommand())
	cmd.AddCommand(NewDevUpCommand())
	cmd.AddCommand(NewDevDownCommand())
	cmd.AddCommand(NewDevRestartCommand())
	cmd.AddCommand(NewDevShellCommand())
	cmd.AddCommand(NewDevStatusCommand())
	cmd.AddCommand(NewDevComposeCommand())

	return cmd
}

// loadWorkspaceConfig loads the stack config from the current working
// directory.
func loadWorkspaceConfig() (*stack.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to get current directory", err)
	}
	return stack.Load(cwd)
}

// connectDocker creates a Docker client and verifies the daemon is
// reachable.
func connectDocker(ctx context.Context) (*docker.Client, error) {
	cli, err := docker.NewClient()
	if err != nil {
		return nil, err
	}
	if err := cli.Ping(ctx); err != nil {
		cli.Close()
		return nil, err
	}
	return cli, nil
}

// findStack looks up the named stack by querying Docker for labelled
// containers. Returns ExitStackNotFound when no containers carry the
// stack's label.
func findStack(ctx context.Context, cli *docker.Client, stackName string) (*model.Stack, error) {
	containers, err := docker.ListManagedContainers(ctx, cli)
	if err != nil {
		return nil, err
	}

	grouped := docker.GroupContainersByStack(containers)
	group, ok := grouped[stackName]
	if !ok {
		return nil, model.NewCLIError(model.ExitStackNotFound,
			"stack "+stackName+" not found (no managed containers; run 'janus dev up' first)")
	}

	return docker.BuildStack(stackName, group)
}
