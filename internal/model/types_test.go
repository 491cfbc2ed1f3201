package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseStackStatus verifies that status strings round-trip through
// ParseStackStatus, including case normalization and rejection of
// unknown values.
func TestParseStackStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    StackStatus
		wantErr bool
	}{
		{name: "running", input: "running", want: StatusRunning},
		{name: "stopped", input: "stopped", want: StatusStopped},
		{name: "degraded", input: "degraded", want: StatusDegraded},
		{name: "uppercase is normalized", input: "RUNNING", want: StatusRunning},
		{name: "mixed case is normalized", input: "Stopped", want: StatusStopped},
		{name: "empty string is rejected", input: "", wantErr: true},
		{name: "unknown value is rejected", input: "paused", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStackStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestStackStatusIsValid covers the validity check for both defined and
// arbitrary status values.
func TestStackStatusIsValid(t *testing.T) {
	assert.True(t, StatusRunning.IsValid())
	assert.True(t, StatusStopped.IsValid())
	assert.True(t, StatusDegraded.IsValid())
	assert.False(t, StackStatus("").IsValid())
	assert.False(t, StackStatus("exited").IsValid())
}

// TestParseContainerRole verifies role parsing, including case handling.
func TestParseContainerRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ContainerRole
		wantErr bool
	}{
		{name: "app", input: "app", want: RoleApp},
		{name: "redis", input: "redis", want: RoleRedis},
		{name: "uppercase is normalized", input: "APP", want: RoleApp},
		{name: "unknown role is rejected", input: "db", wantErr: true},
		{name: "empty role is rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContainerRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestValidateName verifies the stack name validation rules:
// alphanumeric plus hyphens, starting and ending with alphanumeric.
func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "janus"},
		{name: "name with hyphen", input: "janus-dev"},
		{name: "single character", input: "j"},
		{name: "numeric name", input: "123"},
		{name: "empty name", input: "", wantErr: true},
		{name: "leading hyphen", input: "-janus", wantErr: true},
		{name: "trailing hyphen", input: "janus-", wantErr: true},
		{name: "underscore", input: "janus_dev", wantErr: true},
		{name: "slash", input: "janus/dev", wantErr: true},
		{name: "space", input: "janus dev", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestStackContainerByRole verifies per-role container lookup on a Stack.
func TestStackContainerByRole(t *testing.T) {
	stack := &Stack{
		Name: "janus",
		Containers: []ContainerInfo{
			{ContainerID: "aaa", ContainerName: "janus-redis", Role: RoleRedis},
			{ContainerID: "bbb", ContainerName: "janus-app", Role: RoleApp},
		},
	}

	app := stack.ContainerByRole(RoleApp)
	require.NotNil(t, app)
	assert.Equal(t, "bbb", app.ContainerID)

	redis := stack.ContainerByRole(RoleRedis)
	require.NotNil(t, redis)
	assert.Equal(t, "janus-redis", redis.ContainerName)

	// A role with no matching container returns nil rather than a zero value.
	empty := &Stack{Name: "empty"}
	assert.Nil(t, empty.ContainerByRole(RoleApp))
}

// TestCLIError verifies the error message formatting and unwrapping
// behavior of CLIError.
func TestCLIError(t *testing.T) {
	t.Run("message only", func(t *testing.T) {
		err := NewCLIError(ExitStackNotFound, "stack not found")
		assert.Equal(t, "stack not found", err.Error())
		assert.Equal(t, ExitStackNotFound, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped error", func(t *testing.T) {
		underlying := fmt.Errorf("connection refused")
		err := WrapCLIError(ExitDockerNotRunning, "Docker daemon unreachable", underlying)
		assert.Equal(t, "Docker daemon unreachable: connection refused", err.Error())
		assert.Equal(t, underlying, err.Unwrap())
	})

	t.Run("errors.As finds CLIError through wrapping", func(t *testing.T) {
		inner := NewCLIError(ExitPortConflict, "port 6379 in use")
		wrapped := fmt.Errorf("bringing up stack: %w", inner)

		var cliErr *CLIError
		require.True(t, errors.As(wrapped, &cliErr))
		assert.Equal(t, ExitPortConflict, cliErr.Code)
	})
}
