// Package cli — dev_up.go implements the "janus dev up" command.
//
// The up command brings the full development stack online. Every step
// is idempotent: resources that already exist are reused, containers
// that are merely stopped are restarted, and running containers are
// left alone, so "janus dev up" can be re-run safely at any time.
//
// Orchestration steps:
//  1. Connect to Docker and load the workspace config
//  2. Pre-flight check the published Redis port
//  3. Ensure the stack network exists
//  4. Ensure the Redis data volume exists
//  5. Start the Redis container and wait until it answers PING
//  6. Start the app container with the workspace bind mount
//  7. Output results (text or JSON)
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/docker"
	"github.com/janus-labs/janus/internal/model"
	"github.com/janus-labs/janus/internal/port"
	"github.com/janus-labs/janus/internal/stack"
)

const (
	// redisReadyAttemptTimeout bounds a single PING probe.
	redisReadyAttemptTimeout = 2 * time.Second

	// redisReadyDeadline bounds the overall wait for Redis to accept
	// connections after its container starts.
	redisReadyDeadline = 30 * time.Second
)

// upFlags holds the flag values for the dev up command.
type upFlags struct {
	version string // --version: app image tag override
}

// NewDevUpCommand creates the "dev up" cobra command.
func NewDevUpCommand() *cobra.Command {
	flags := &upFlags{}

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Start the development stack",
		Long: `Start the development stack for the current workspace.

Creates the stack network and Redis data volume if they do not already
exist, starts the Redis container, waits for it to accept connections,
then starts the app container with the workspace bind-mounted.

Re-running up on an already-running stack is a no-op.

Examples:
  janus dev up
  janus dev up --version 1.2.0`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevUp(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.version, "version", "", "App image version tag (default: git describe)")

	return cmd
}

// upResult is the JSON output of a successful up.
type upResult struct {
	Stack      string   `json:"stack"`
	Network    string   `json:"network"`
	Volume     string   `json:"volume"`
	Containers []string `json:"containers"`
	RedisURL   string   `json:"redisUrl"`
}

// runDevUp is the main orchestration function for the up command.
func runDevUp(ctx context.Context, flags *upFlags) error {
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
	VerboseLog("Stack: %s (workspace %s)", cfg.Name, cfg.WorkspacePath)

	// Step 2: Pre-flight the published Redis port, but only when no
	// stack container is already bound to it. An existing stack owns
	// the port legitimately.
	existing, err := existingContainers(ctx, cli, cfg.Name)
	if err != nil {
		return err
	}
	if cfg.RedisPublished() && existing[model.RoleRedis] == nil {
		scanner := port.NewScanner()
		if !scanner.IsPortAvailable(cfg.RedisPort, "tcp") {
			msg := fmt.Sprintf("port %d is already in use", cfg.RedisPort)
			if alt, altErr := scanner.FindAvailablePort(cfg.RedisPort+1, cfg.RedisPort+100, "tcp"); altErr == nil {
				msg += fmt.Sprintf(" (try \"redisPort\": %d in the stack config)", alt)
			}
			return model.NewCLIError(model.ExitPortConflict, msg)
		}
	}

	// Step 3: Network.
	created, err := docker.EnsureNetwork(ctx, cli, cfg.NetworkName(), docker.ResourceLabels(cfg.Name))
	if err != nil {
		return err
	}
	logEnsure("network", cfg.NetworkName(), created)

	// Step 4: Volume. Existing volumes are reused so recorded market
	// data survives stack restarts.
	created, err = docker.EnsureVolume(ctx, cli, cfg.Volume, docker.ResourceLabels(cfg.Name))
	if err != nil {
		return err
	}
	logEnsure("volume", cfg.Volume, created)

	// Step 5: Redis container, then wait for PING before touching the
	// app container so the app never sees a half-started stack.
	now := time.Now()
	if err := ensureContainer(ctx, cli, existing[model.RoleRedis], func() error {
		runArgs := []string{
			"--network", cfg.NetworkName(),
			"-v", cfg.Volume + ":/data",
			"--restart", "unless-stopped",
		}
		if cfg.RedisPublished() {
			runArgs = append(runArgs, "-p", strconv.Itoa(cfg.RedisPort)+":6379")
		}
		runArgs = append(runArgs, labelArgs(docker.BuildLabels(cfg.Name, model.RoleRedis, cfg.WorkspacePath, "", now))...)
		return docker.RunContainer(ctx, cfg.ContainerName(model.RoleRedis), cfg.RedisImage, runArgs, nil)
	}); err != nil {
		return err
	}

	redisID, err := containerIDByName(ctx, cli, cfg.Name, model.RoleRedis)
	if err != nil {
		return err
	}
	VerboseLog("Waiting for Redis to accept connections")
	if err := docker.WaitForExec(ctx, cli, redisID,
		[]string{"redis-cli", "ping"}, redisReadyAttemptTimeout, redisReadyDeadline); err != nil {
		return err
	}

	// Step 6: App container.
	version := flags.version
	if version == "" {
		if version, err = stack.Version(cfg.WorkspacePath); err != nil {
			VerboseLog("git describe failed, using \"latest\"")
			version = "latest"
		}
	}
	imageTag := cfg.ImageTag(version)

	if err := ensureContainer(ctx, cli, existing[model.RoleApp], func() error {
		runArgs := []string{
			"--network", cfg.NetworkName(),
			"-v", cfg.WorkspacePath + ":" + cfg.Workdir,
			"-w", cfg.Workdir,
			"-e", "JANUS_REDIS_URL=" + cfg.RedisURL(),
		}
		for key, value := range cfg.Env {
			runArgs = append(runArgs, "-e", key+"="+value)
		}
		runArgs = append(runArgs, labelArgs(docker.BuildLabels(cfg.Name, model.RoleApp, cfg.WorkspacePath, version, now))...)
		return docker.RunContainer(ctx, cfg.ContainerName(model.RoleApp), imageTag, runArgs, cfg.Command)
	}); err != nil {
		return err
	}

	// Step 7: Output.
	result := upResult{
		Stack:   cfg.Name,
		Network: cfg.NetworkName(),
		Volume:  cfg.Volume,
		Containers: []string{
			cfg.ContainerName(model.RoleRedis),
			cfg.ContainerName(model.RoleApp),
		},
		RedisURL: cfg.RedisURL(),
	}
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("Stack %s is up\n", cfg.Name)
		fmt.Printf("  shell: janus dev shell\n")
		if cfg.RedisPublished() {
			fmt.Printf("  redis: localhost:%d\n", cfg.RedisPort)
		}
	}
	return nil
}

// existingContainers returns the stack's containers keyed by role, or
// an empty map when the stack has never been brought up.
func existingContainers(ctx context.Context, cli *docker.Client, stackName string) (map[model.ContainerRole]*model.ContainerInfo, error) {
	containers, err := docker.ListManagedContainers(ctx, cli)
	if err != nil {
		return nil, err
	}

	result := make(map[model.ContainerRole]*model.ContainerInfo)
	for _, c := range docker.GroupContainersByStack(containers)[stackName] {
		c := c
		result[c.Role] = &c
	}
	return result, nil
}

// ensureContainer makes one stack container running: an already
// running container is left untouched, a stopped one is started, and
// a missing one is created via the run callback.
func ensureContainer(ctx context.Context, cli *docker.Client, existing *model.ContainerInfo, run func() error) error {
	if existing == nil {
		return run()
	}
	if existing.Status == "running" {
		VerboseLog("Container %s already running", existing.ContainerName)
		return nil
	}
	VerboseLog("Starting existing container %s", existing.ContainerName)
	return docker.StartContainer(ctx, cli, existing.ContainerID)
}

// containerIDByName resolves the container ID for a stack role,
// re-querying Docker since the container may have just been created.
func containerIDByName(ctx context.Context, cli *docker.Client, stackName string, role model.ContainerRole) (string, error) {
	containers, err := existingContainers(ctx, cli, stackName)
	if err != nil {
		return "", err
	}
	info, ok := containers[role]
	if !ok {
		return "", model.NewCLIError(model.ExitStackNotFound,
			fmt.Sprintf("stack %s has no %s container", stackName, role))
	}
	return info.ContainerID, nil
}

// labelArgs converts a label map to docker run --label arguments.
func labelArgs(labels map[string]string) []string {
	args := make([]string, 0, len(labels)*2)
	for key, value := range labels {
		args = append(args, "--label", key+"="+value)
	}
	return args
}

// logEnsure reports whether an idempotent ensure step created or
// reused its resource.
func logEnsure(kind, name string, created bool) {
	if created {
		VerboseLog("Created %s %s", kind, name)
	} else {
		VerboseLog("Reusing existing %s %s", kind, name)
	}
	if !IsJSONOutput() && created {
		fmt.Fprintf(os.Stderr, "Created %s %s\n", kind, name)
	}
}
