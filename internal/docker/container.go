// container.go implements Docker container lifecycle operations for the
// janus CLI. It provides functions for listing, grouping, starting,
// stopping, and removing the containers that make up a dev stack.
//
// Containers are created with `docker run` (via os/exec) and subsequently
// managed through the Docker SDK. All managed containers are identified by
// the "janus.managed-by" label, which separates them from unrelated
// containers on the same host.
package docker

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/janus-labs/janus/internal/model"
)

// ListManagedContainers queries the Docker daemon for all containers that
// have the "janus.managed-by=janus" label. It returns a slice of
// ContainerInfo representing each managed container, including stopped ones.
//
// This function is the primary entry point for discovering what stacks
// currently exist. All state is derived from Docker labels rather than
// any external database.
//
// The All flag is set because a stack may consist of stopped containers
// that still need to be tracked (e.g., for `dev status` or `dev down`).
func ListManagedContainers(ctx context.Context, cli *Client) ([]model.ContainerInfo, error) {
	// Filter server-side so Docker only returns containers with our
	// management label.
	filterArgs := filters.NewArgs(
		filters.Arg("label", LabelManagedBy+"="+ManagedByValue),
	)

	containers, err := cli.Inner().ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDockerNotRunning,
			"failed to list Docker containers",
			err,
		)
	}

	// Convert Docker API structs to domain ContainerInfo structs. This
	// decouples the rest of the application from the Docker SDK types.
	result := make([]model.ContainerInfo, 0, len(containers))
	for _, c := range containers {
		result = append(result, containerToInfo(c))
	}

	return result, nil
}

// containerToInfo converts a Docker API Container struct to our domain
// model ContainerInfo. This is a pure mapping function with no side effects.
//
// The Docker API returns container names with a leading "/" prefix
// (e.g., "/janus-app"), which we strip for cleaner display in CLI output.
func containerToInfo(c types.Container) model.ContainerInfo {
	name := ""
	if len(c.Names) > 0 {
		name = strings.TrimPrefix(c.Names[0], "/")
	}

	// The role label is set by `dev up`. An unparseable or missing role
	// maps to the empty role rather than failing the listing.
	role, _ := model.ParseContainerRole(c.Labels[LabelRole])

	return model.ContainerInfo{
		ContainerID:   c.ID,
		ContainerName: name,
		Role:          role,
		Image:         c.Image,
		Status:        c.State,
		Labels:        c.Labels,
	}
}

// GroupContainersByStack groups a slice of ContainerInfo by their
// "janus.stack" label value. This is used by `dev status`, which displays
// containers organized by stack.
//
// Containers without a "janus.stack" label are silently skipped, since
// they cannot be attributed to any stack. This should not happen in
// practice because ListManagedContainers already filters for labeled
// containers.
func GroupContainersByStack(containers []model.ContainerInfo) map[string][]model.ContainerInfo {
	groups := make(map[string][]model.ContainerInfo)

	for _, c := range containers {
		stackName, ok := c.Labels[LabelStack]
		if !ok || stackName == "" {
			continue
		}
		groups[stackName] = append(groups[stackName], c)
	}

	return groups
}

// BuildStack constructs a Stack domain object from a group of containers
// that belong to the same stack.
//
// Label parsing prefers the app container because it carries the workspace
// path and version labels; other roles leave those fields empty. The
// overall status is aggregated from the individual container states:
//
//	all running  → running
//	none running → stopped
//	otherwise    → degraded
//
// Returns an error if the containers slice is empty or if label parsing fails.
func BuildStack(stackName string, containers []model.ContainerInfo) (*model.Stack, error) {
	if len(containers) == 0 {
		return nil, fmt.Errorf("cannot build stack %q: no containers provided", stackName)
	}

	// Pick the container whose labels we parse: the app container when
	// present, otherwise the first one in the group.
	source := containers[0]
	for _, c := range containers {
		if c.Role == model.RoleApp {
			source = c
			break
		}
	}

	stack, _, err := ParseLabels(source.Labels)
	if err != nil {
		return nil, fmt.Errorf("failed to parse labels for stack %q: %w", stackName, err)
	}

	if source.Role == model.RoleApp {
		stack.Image = source.Image
	}

	stack.Containers = containers
	stack.Status = aggregateStatus(containers)

	return stack, nil
}

// aggregateStatus computes the stack-level status from individual
// container states, per the lifecycle model:
//
//	[Created] → Running → Stopped ⇄ Running → [Removed]
//	Running/Stopped → Degraded (partial failure)
func aggregateStatus(containers []model.ContainerInfo) model.StackStatus {
	running := 0
	for _, c := range containers {
		if c.Status == "running" {
			running++
		}
	}

	switch running {
	case 0:
		return model.StatusStopped
	case len(containers):
		return model.StatusRunning
	default:
		return model.StatusDegraded
	}
}

// RunContainer creates and starts a container using "docker run -d".
//
// The runArgs parameter carries all Docker run flags: label flags
// (--label), port mappings (-p), volume mounts (-v), network attachment
// (--network), and any trailing command after the image name is appended
// by the caller via extraArgs.
//
// os/exec is used rather than the Docker SDK because the SDK's
// ContainerCreate + ContainerStart workflow requires constructing complex
// Config/HostConfig structs, while "docker run" accepts the same CLI flags
// users already know from the Makefile era of this project.
func RunContainer(ctx context.Context, containerName, imageName string, runArgs, extraArgs []string) error {
	args := make([]string, 0, len(runArgs)+len(extraArgs)+5)
	args = append(args, "run", "-d")
	args = append(args, "--name", containerName)
	args = append(args, runArgs...)
	args = append(args, imageName)
	args = append(args, extraArgs...)

	cmd := exec.CommandContext(ctx, "docker", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("docker run failed for container %q: %s",
				containerName, strings.TrimSpace(string(output))),
			err,
		)
	}

	return nil
}

// StartContainer starts a stopped container by its ID using the Docker SDK.
// It sends a start request to the Docker daemon, which resumes the
// container's main process.
func StartContainer(ctx context.Context, cli *Client, containerID string) error {
	// container.StartOptions is currently empty in the Docker SDK but is
	// included for forward compatibility with future Docker API versions.
	err := cli.Inner().ContainerStart(ctx, containerID, container.StartOptions{})
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to start container %q", containerID),
			err,
		)
	}
	return nil
}

// StopContainer stops a running container by its ID using the Docker SDK.
// Docker sends SIGTERM to the container's main process and escalates to
// SIGKILL after the daemon's default timeout (typically 10 seconds).
func StopContainer(ctx context.Context, cli *Client, containerID string) error {
	// StopOptions with nil Timeout uses Docker's default grace period.
	err := cli.Inner().ContainerStop(ctx, containerID, container.StopOptions{})
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to stop container %q", containerID),
			err,
		)
	}
	return nil
}

// RemoveContainer removes a container by its ID using the Docker SDK.
// The container must be stopped first unless force is true, in which case
// Docker kills it before removal.
func RemoveContainer(ctx context.Context, cli *Client, containerID string, force bool) error {
	err := cli.Inner().ContainerRemove(ctx, containerID, container.RemoveOptions{
		Force: force,
	})
	if err != nil {
		return model.WrapCLIError(
			model.ExitDockerNotRunning,
			fmt.Sprintf("failed to remove container %q", containerID),
			err,
		)
	}
	return nil
}
