// network.go implements the shared bridge network for a dev stack.
//
// The app and Redis containers join one user-defined bridge network so
// the app can reach Redis by container name. This is the Docker-native
// counterpart of the pod the original tooling created.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/errdefs"

	"github.com/janus-labs/janus/internal/model"
)

// NetworkExists reports whether a named Docker network already exists.
// The name filter matches substrings, so results are compared against
// the exact requested name.
func NetworkExists(ctx context.Context, cli *Client, name string) (bool, error) {
	nets, err := cli.Inner().NetworkList(ctx, network.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return false, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker networks",
			err,
		)
	}

	for _, n := range nets {
		if n.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// EnsureNetwork creates a bridge network with the given labels if it does
// not already exist. Returns true if the network was created, false if it
// was already present.
//
// Like EnsureVolume, this is an idempotency guard for `dev up`.
func EnsureNetwork(ctx context.Context, cli *Client, name string, labels map[string]string) (bool, error) {
	exists, err := NetworkExists(ctx, cli, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = cli.Inner().NetworkCreate(ctx, name, network.CreateOptions{
		Driver: "bridge",
		Labels: labels,
	})
	if err != nil {
		return false, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create network %q", name),
			err,
		)
	}

	return true, nil
}

// RemoveNetwork deletes a named network. Containers attached to it must
// be removed first, which `dev down` guarantees by ordering. Removing a
// network that does not exist is a no-op, keeping `dev down` idempotent.
func RemoveNetwork(ctx context.Context, cli *Client, name string) error {
	if err := ignoreNotFound(cli.Inner().NetworkRemove(ctx, name)); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove network %q", name),
			err,
		)
	}
	return nil
}

// ignoreNotFound maps a Docker not-found error to nil so removal of an
// already-absent resource succeeds.
func ignoreNotFound(err error) error {
	if errdefs.IsNotFound(err) {
		return nil
	}
	return err
}
