package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// StackStatus represents the lifecycle state of a dev stack.
// The state transitions are:
//
//	[Created] → Running → Stopped ⇄ Running → [Removed]
//	Running/Stopped → Degraded (when only part of the stack is running)
type StackStatus string

const (
	// StatusRunning indicates all containers in the stack are running.
	StatusRunning StackStatus = "running"

	// StatusStopped indicates containers exist but none are running.
	// The data volume and configuration are preserved.
	StatusStopped StackStatus = "stopped"

	// StatusDegraded indicates some, but not all, containers in the stack
	// are running. This typically happens when one container crashed while
	// the rest of the stack stayed up.
	StatusDegraded StackStatus = "degraded"
)

// String returns the string representation of StackStatus.
// This satisfies fmt.Stringer for CLI output and logging.
func (s StackStatus) String() string {
	return string(s)
}

// IsValid checks whether the StackStatus value is one of the
// predefined valid states.
func (s StackStatus) IsValid() bool {
	switch s {
	case StatusRunning, StatusStopped, StatusDegraded:
		return true
	default:
		return false
	}
}

// ParseStackStatus converts a string to a StackStatus.
// Returns an error if the string does not match any valid status.
func ParseStackStatus(s string) (StackStatus, error) {
	status := StackStatus(strings.ToLower(s))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid stack status: %q (valid: running, stopped, degraded)", s)
	}
	return status, nil
}

// ContainerRole identifies the function of a container within a dev stack.
// Each stack has exactly one container per role.
type ContainerRole string

const (
	// RoleApp is the workbench container built from the project Dockerfile.
	// The project workspace is bind-mounted into it and `janus dev shell`
	// execs into it.
	RoleApp ContainerRole = "app"

	// RoleRedis is the Redis container holding TimeSeries market data.
	RoleRedis ContainerRole = "redis"
)

// String returns the string representation of ContainerRole.
func (r ContainerRole) String() string {
	return string(r)
}

// IsValid checks whether the ContainerRole value is one of the
// predefined valid roles.
func (r ContainerRole) IsValid() bool {
	switch r {
	case RoleApp, RoleRedis:
		return true
	default:
		return false
	}
}

// ParseContainerRole converts a string to a ContainerRole.
// Returns an error if the string does not match any valid role.
func ParseContainerRole(s string) (ContainerRole, error) {
	role := ContainerRole(strings.ToLower(s))
	if !role.IsValid() {
		return "", fmt.Errorf("invalid container role: %q (valid: app, redis)", s)
	}
	return role, nil
}

// Stack represents a dev stack — the set of containers, the shared network,
// and the data volume that make up one janus development environment.
// This is the primary aggregate entity in the domain.
//
// All fields are reconstructed at runtime from Docker container labels.
// There is no persistent state file on disk.
type Stack struct {
	// Name is the unique identifier for this stack.
	// Must contain only alphanumeric characters and hyphens.
	Name string `json:"name"`

	// WorkspacePath is the absolute filesystem path to the project
	// directory bind-mounted into the app container.
	WorkspacePath string `json:"workspacePath"`

	// Image is the app container image reference, including the version tag
	// produced by `janus dev build`.
	Image string `json:"image"`

	// Version is the version tag baked into the app image, derived from
	// `git describe` at build time.
	Version string `json:"version,omitempty"`

	// Status is the current lifecycle state of the stack.
	Status StackStatus `json:"status"`

	// Containers holds information about all Docker containers belonging
	// to this stack. Must contain at least one container.
	Containers []ContainerInfo `json:"containers,omitempty"`

	// CreatedAt is the timestamp when this stack was first brought up.
	CreatedAt time.Time `json:"createdAt"`
}

// ContainerByRole returns the stack container with the given role,
// or nil if no container carries that role label.
func (s *Stack) ContainerByRole(role ContainerRole) *ContainerInfo {
	for i := range s.Containers {
		if s.Containers[i].Role == role {
			return &s.Containers[i]
		}
	}
	return nil
}

// nameRegex validates stack names: alphanumeric + hyphens only,
// must start and end with alphanumeric.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ValidateName checks if the given name is a valid stack name.
// Valid names contain only alphanumeric characters and hyphens,
// and must start/end with an alphanumeric character. The name is
// embedded into container, network, and volume names, so Docker's
// naming rules apply transitively.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("stack name must not be empty")
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("invalid stack name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", name)
	}
	return nil
}

// ContainerInfo holds runtime information about a Docker container.
// This data is fetched dynamically from the Docker API, not persisted.
type ContainerInfo struct {
	// ContainerID is the unique Docker container identifier (SHA-256 hash prefix).
	ContainerID string `json:"containerId"`

	// ContainerName is the human-readable Docker container name.
	ContainerName string `json:"containerName"`

	// Role is the container's function within the stack, parsed from
	// the "janus.role" label. Empty if the label is missing.
	Role ContainerRole `json:"role,omitempty"`

	// Image is the image reference the container was created from.
	Image string `json:"image"`

	// Status is the Docker container status (e.g., "running", "exited", "created").
	Status string `json:"status"`

	// Labels is the full set of Docker labels on the container.
	// Includes janus management labels (janus.* prefix).
	Labels map[string]string `json:"labels,omitempty"`
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and
// CI systems to programmatically determine the outcome of a command.
//
// Note: `janus dev shell` deliberately bypasses this taxonomy and exits
// with whatever code the command inside the container returned.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates the stack configuration file was not found
	// or failed validation.
	ExitConfigError ExitCode = 2

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 3

	// ExitPortConflict indicates a host port required by the stack is
	// already in use by another process.
	ExitPortConflict ExitCode = 4

	// ExitGitError indicates a Git operation (version derivation) failed.
	ExitGitError ExitCode = 5

	// ExitStackNotFound indicates the specified stack or one of its
	// containers does not exist.
	ExitStackNotFound ExitCode = 6

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 7
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
