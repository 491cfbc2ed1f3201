package docker

import (
	"fmt"
	"strings"
	"time"

	"github.com/janus-labs/janus/internal/model"
)

// Label key constants define the Docker label keys used to persist
// stack metadata on containers, networks, and volumes. These labels
// serve as the sole persistence mechanism — there is no external
// state file.
//
// All keys share the "janus." prefix to namespace them and avoid
// collisions with labels set by other tools.
const (
	// LabelPrefix is the common prefix for all janus labels.
	// Using a consistent prefix enables efficient label-based filtering
	// when listing resources via the Docker API.
	LabelPrefix = "janus."

	// LabelManagedBy identifies resources managed by janus.
	// This is the primary label used for filtering and discovery.
	// Key: "janus.managed-by", Value: always "janus".
	LabelManagedBy = LabelPrefix + "managed-by"

	// LabelStack stores the stack's unique name.
	// Key: "janus.stack", Value: stack name (e.g., "janus").
	LabelStack = LabelPrefix + "stack"

	// LabelRole stores the container's function within the stack.
	// Key: "janus.role", Value: "app" or "redis".
	LabelRole = LabelPrefix + "role"

	// LabelWorkspace stores the absolute filesystem path to the project
	// directory mounted into the app container.
	// Key: "janus.workspace", Value: absolute path.
	LabelWorkspace = LabelPrefix + "workspace"

	// LabelVersion stores the version tag the app image was built with,
	// derived from `git describe` at build time.
	// Key: "janus.version", Value: version string.
	LabelVersion = LabelPrefix + "version"

	// LabelCreatedAt stores the timestamp when the stack was brought up.
	// Key: "janus.created-at", Value: RFC3339 formatted timestamp.
	LabelCreatedAt = LabelPrefix + "created-at"
)

// ManagedByValue is the constant value for the LabelManagedBy label.
// All resources created by this CLI are tagged with this value,
// enabling discovery via Docker API label filters.
const ManagedByValue = "janus"

// BuildLabels constructs the Docker label map applied to a stack container.
// From these labels alone the Stack domain object can be reconstructed by
// inspecting containers — no external state file is needed.
//
// The image reference and version are only meaningful on the app container;
// for other roles the version argument may be empty.
func BuildLabels(stackName string, role model.ContainerRole, workspacePath, version string, createdAt time.Time) map[string]string {
	labels := map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelStack:     stackName,
		LabelRole:      role.String(),
		LabelWorkspace: workspacePath,
		// RFC3339 in UTC keeps timestamps consistent regardless of the
		// host machine's timezone.
		LabelCreatedAt: createdAt.UTC().Format(time.RFC3339),
	}

	if version != "" {
		labels[LabelVersion] = version
	}

	return labels
}

// ResourceLabels returns the minimal label set applied to stack resources
// that are not containers (the network and the data volume). These carry
// enough metadata for discovery and for cleanup in `janus dev down`.
func ResourceLabels(stackName string) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelStack:     stackName,
	}
}

// ParseLabels reconstructs stack metadata from Docker container labels.
// This is the inverse of BuildLabels and is used when listing or
// inspecting containers to rebuild the domain model.
//
// Required labels: managed-by, stack, role, created-at. Missing required
// labels cause an error that lists all of them at once for easier
// debugging. Workspace and version are optional because only the app
// container carries meaningful values for them.
//
// Note: Status and Containers on the returned Stack are NOT populated
// here because they are determined at runtime from Docker container
// state, not from static label values.
func ParseLabels(labels map[string]string) (*model.Stack, model.ContainerRole, error) {
	requiredKeys := []string{
		LabelManagedBy,
		LabelStack,
		LabelRole,
		LabelCreatedAt,
	}

	var missing []string
	for _, key := range requiredKeys {
		if _, ok := labels[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, "", fmt.Errorf("missing required Docker labels: %s", strings.Join(missing, ", "))
	}

	// Verify this container is actually managed by janus.
	if labels[LabelManagedBy] != ManagedByValue {
		return nil, "", fmt.Errorf(
			"label %s has unexpected value %q (expected %q)",
			LabelManagedBy, labels[LabelManagedBy], ManagedByValue,
		)
	}

	role, err := model.ParseContainerRole(labels[LabelRole])
	if err != nil {
		return nil, "", fmt.Errorf("invalid label %s: %w", LabelRole, err)
	}

	createdAt, err := time.Parse(time.RFC3339, labels[LabelCreatedAt])
	if err != nil {
		return nil, "", fmt.Errorf("invalid label %s: %w", LabelCreatedAt, err)
	}

	stack := &model.Stack{
		Name:          labels[LabelStack],
		WorkspacePath: labels[LabelWorkspace],
		Version:       labels[LabelVersion],
		CreatedAt:     createdAt,
	}

	return stack, role, nil
}
