// Package cli — dev_down.go implements the "janus dev down" command.
//
// The down command stops and removes the stack's containers and
// network. The Redis data volume is deliberately preserved so that
// recorded market data survives; pass --volumes to remove it too.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/docker"
)

// downFlags holds the flag values for the dev down command.
type downFlags struct {
	volumes bool // --volumes: also remove the Redis data volume
}

// NewDevDownCommand creates the "dev down" cobra command.
func NewDevDownCommand() *cobra.Command {
	flags := &downFlags{}

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Stop and remove the development stack",
		Long: `Stop and remove the stack's containers and network.

The Redis data volume is kept unless --volumes is given, so recorded
time series survive a down/up cycle.

Examples:
  janus dev down
  janus dev down --volumes`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevDown(cmd.Context(), flags)
		},
	}

	cmd.Flags().BoolVar(&flags.volumes, "volumes", false, "Also remove the Redis data volume")

	return cmd
}

// runDevDown tears the stack down.
func runDevDown(ctx context.Context, flags *downFlags) error {
	// Step 1: Docker connection and workspace config.
	cli, err := connectDocker(ctx)
	if err != nil {
		return err
	}
	defer cli.Close()

	cfg, err := loadWorkspaceConfig()
	if err != nil {
		return err
	}

	// Step 2: Stop and remove all stack containers. A stack with no
	// containers is not an error here; down is idempotent.
	containers, err := docker.ListManagedContainers(ctx, cli)
	if err != nil {
		return err
	}
	group := docker.GroupContainersByStack(containers)[cfg.Name]

	var removed []string
	for _, c := range group {
		VerboseLog("Stopping container %s", c.ContainerName)
		if err := docker.StopContainer(ctx, cli, c.ContainerID); err != nil {
			return err
		}
		if err := docker.RemoveContainer(ctx, cli, c.ContainerID, false); err != nil {
			return err
		}
		removed = append(removed, c.ContainerName)
	}

	// Step 3: Network. Removing a network that is already gone is
	// fine; RemoveNetwork ignores not-found.
	if err := docker.RemoveNetwork(ctx, cli, cfg.NetworkName()); err != nil {
		return err
	}

	// Step 4: Volume, only on explicit request.
	volumeRemoved := false
	if flags.volumes {
		exists, err := docker.VolumeExists(ctx, cli, cfg.Volume)
		if err != nil {
			return err
		}
		if exists {
			if err := docker.RemoveVolume(ctx, cli, cfg.Volume); err != nil {
				return err
			}
			volumeRemoved = true
		}
	}

	// Step 5: Output.
	if IsJSONOutput() {
		out := map[string]interface{}{
			"stack":             cfg.Name,
			"containersRemoved": removed,
			"volumeRemoved":     volumeRemoved,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("Stack %s is down (%d containers removed)\n", cfg.Name, len(removed))
		if flags.volumes && volumeRemoved {
			fmt.Printf("Removed volume %s\n", cfg.Volume)
		} else if !flags.volumes {
			fmt.Printf("Volume %s kept (use --volumes to remove)\n", cfg.Volume)
		}
	}
	return nil
}
