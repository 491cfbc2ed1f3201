// volume.go implements the data volume lifecycle for a dev stack.
//
// The stack's Redis data lives in a named Docker volume so that market
// data survives `dev down` / `dev up` cycles. Volume creation is
// idempotent: bringing a stack up twice never creates a duplicate or
// wipes existing data.
package docker

import (
	"context"
	"fmt"

	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/volume"

	"github.com/janus-labs/janus/internal/model"
)

// VolumeExists reports whether a named Docker volume already exists.
//
// The volume list is filtered server-side by exact name. Docker's name
// filter matches substrings, so the results are compared against the
// requested name before reporting a hit.
func VolumeExists(ctx context.Context, cli *Client, name string) (bool, error) {
	resp, err := cli.Inner().VolumeList(ctx, volume.ListOptions{
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return false, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker volumes",
			err,
		)
	}

	for _, v := range resp.Volumes {
		if v.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// EnsureVolume creates a named volume with the given labels if it does not
// already exist. Returns true if the volume was created, false if it was
// already present.
//
// This is the idempotency guard for `dev up`: an existing volume is left
// untouched, preserving whatever data it holds.
func EnsureVolume(ctx context.Context, cli *Client, name string, labels map[string]string) (bool, error) {
	exists, err := VolumeExists(ctx, cli, name)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = cli.Inner().VolumeCreate(ctx, volume.CreateOptions{
		Name:   name,
		Labels: labels,
	})
	if err != nil {
		return false, model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to create volume %q", name),
			err,
		)
	}

	return true, nil
}

// RemoveVolume deletes a named volume. The volume must not be in use by
// any container; `dev down` removes the stack's containers first.
//
// Used only when `dev down --volumes` explicitly requests data removal.
func RemoveVolume(ctx context.Context, cli *Client, name string) error {
	if err := cli.Inner().VolumeRemove(ctx, name, false); err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove volume %q", name),
			err,
		)
	}
	return nil
}
