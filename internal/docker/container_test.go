package docker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janus-labs/janus/internal/model"
)

// stackLabels builds a complete label set for test containers.
func stackLabels(stack, role string) map[string]string {
	return map[string]string{
		LabelManagedBy: ManagedByValue,
		LabelStack:     stack,
		LabelRole:      role,
		LabelWorkspace: "/home/dev/" + stack,
		LabelCreatedAt: "2026-08-01T09:30:00Z",
	}
}

// TestGroupContainersByStack verifies grouping by the janus.stack label
// and that unlabeled containers are skipped.
func TestGroupContainersByStack(t *testing.T) {
	containers := []model.ContainerInfo{
		{ContainerID: "a1", Labels: stackLabels("janus", "app")},
		{ContainerID: "a2", Labels: stackLabels("janus", "redis")},
		{ContainerID: "b1", Labels: stackLabels("scratch", "app")},
		{ContainerID: "x1", Labels: map[string]string{LabelManagedBy: ManagedByValue}},
	}

	groups := GroupContainersByStack(containers)

	require.Len(t, groups, 2)
	assert.Len(t, groups["janus"], 2)
	assert.Len(t, groups["scratch"], 1)
	// The container without a stack label belongs to no group.
	_, ok := groups[""]
	assert.False(t, ok)
}

// TestBuildStack verifies stack reconstruction from container groups,
// including app-container preference and status aggregation.
func TestBuildStack(t *testing.T) {
	t.Run("prefers app container labels", func(t *testing.T) {
		appLabels := stackLabels("janus", "app")
		appLabels[LabelVersion] = "v0.3.1"

		containers := []model.ContainerInfo{
			{ContainerID: "r", Role: model.RoleRedis, Status: "running", Labels: stackLabels("janus", "redis")},
			{ContainerID: "a", Role: model.RoleApp, Status: "running", Image: "janus:v0.3.1", Labels: appLabels},
		}

		stack, err := BuildStack("janus", containers)
		require.NoError(t, err)

		assert.Equal(t, "janus", stack.Name)
		assert.Equal(t, "v0.3.1", stack.Version)
		assert.Equal(t, "janus:v0.3.1", stack.Image)
		assert.Equal(t, model.StatusRunning, stack.Status)
		assert.Len(t, stack.Containers, 2)
	})

	t.Run("empty group is an error", func(t *testing.T) {
		_, err := BuildStack("janus", nil)
		assert.Error(t, err)
	})

	t.Run("broken labels are an error", func(t *testing.T) {
		containers := []model.ContainerInfo{
			{ContainerID: "a", Labels: map[string]string{LabelManagedBy: ManagedByValue}},
		}
		_, err := BuildStack("janus", containers)
		assert.Error(t, err)
	})
}

// TestAggregateStatus covers the running/stopped/degraded aggregation rules.
func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name   string
		states []string
		want   model.StackStatus
	}{
		{name: "all running", states: []string{"running", "running"}, want: model.StatusRunning},
		{name: "all stopped", states: []string{"exited", "exited"}, want: model.StatusStopped},
		{name: "mixed is degraded", states: []string{"running", "exited"}, want: model.StatusDegraded},
		{name: "single running", states: []string{"running"}, want: model.StatusRunning},
		{name: "single created counts as stopped", states: []string{"created"}, want: model.StatusStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			containers := make([]model.ContainerInfo, 0, len(tt.states))
			for i, s := range tt.states {
				containers = append(containers, model.ContainerInfo{
					ContainerID: string(rune('a' + i)),
					Status:      s,
				})
			}
			assert.Equal(t, tt.want, aggregateStatus(containers))
		})
	}
}
