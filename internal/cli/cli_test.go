// Package cli — cli_test.go contains unit tests for the pure helpers
// used by the CLI commands.
//
// These tests verify data transformation logic without requiring a
// Docker daemon or any external dependencies.
package cli

import (
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janus-labs/janus/internal/model"
)

// TestBuildArgs verifies the standard build argument set every app
// image build receives.
func TestBuildArgs(t *testing.T) {
	args := BuildArgs("1.2.0", "0.5.24")

	assert.Equal(t, "1.2.0", args["VERSION"])
	assert.Equal(t, "0.5.24", args["UV_VERSION"])
	assert.Equal(t, strconv.Itoa(os.Getuid()), args["UID"])
	assert.Equal(t, strconv.Itoa(os.Getgid()), args["GID"])
	assert.Len(t, args, 4)
}

// TestLabelArgs verifies the label map to docker run flag conversion.
func TestLabelArgs(t *testing.T) {
	args := labelArgs(map[string]string{"janus.stack": "demo"})
	assert.Equal(t, []string{"--label", "janus.stack=demo"}, args)

	assert.Empty(t, labelArgs(nil))
}

// TestFormatStackStatus verifies the text rendering of the status
// command.
func TestFormatStackStatus(t *testing.T) {
	st := &model.Stack{
		Name:          "demo",
		WorkspacePath: "/home/dev/demo",
		Version:       "1.2.0",
		Status:        model.StatusDegraded,
		Containers: []model.ContainerInfo{
			{ContainerName: "demo-app", Role: model.RoleApp, Status: "exited", Image: "demo:1.2.0"},
			{ContainerName: "demo-redis", Role: model.RoleRedis, Status: "running", Image: "redis/redis-stack-server:7.4.0-v3"},
		},
	}

	out := FormatStackStatus(st)

	assert.Contains(t, out, "Stack:   demo")
	assert.Contains(t, out, "Status:  degraded")
	assert.Contains(t, out, "Version: 1.2.0")
	assert.Contains(t, out, "demo-app")
	assert.Contains(t, out, "demo-redis")
	assert.Contains(t, out, "exited")
}

// TestFormatStackStatusOmitsEmptyFields verifies version and path
// lines disappear when unknown.
func TestFormatStackStatusOmitsEmptyFields(t *testing.T) {
	st := &model.Stack{
		Name:   "demo",
		Status: model.StatusRunning,
	}

	out := FormatStackStatus(st)

	assert.NotContains(t, out, "Version:")
	assert.NotContains(t, out, "Path:")
}
