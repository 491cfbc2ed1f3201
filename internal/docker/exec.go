// exec.go implements command execution inside stack containers.
//
// Two paths exist:
//   - ExecInteractive shells out to `docker exec -it` with the caller's
//     terminal attached. The docker CLI owns TTY negotiation and raw-mode
//     handling, and its exit status is the wrapped command's exit status,
//     which `dev shell` propagates unchanged.
//   - ExecProbe runs a non-interactive command through the Docker SDK and
//     polls for its exit code. `dev up` uses it to wait for Redis to
//     answer PING before declaring the stack ready.
package docker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/docker/docker/api/types/container"

	"github.com/janus-labs/janus/internal/model"
)

// execPollInterval is how often ExecProbe re-inspects a running exec.
const execPollInterval = 250 * time.Millisecond

// ExecInteractive runs a command inside a container with the caller's
// stdin/stdout/stderr attached, via `docker exec -it`.
//
// The returned int is the exit code of the command that ran inside the
// container. A zero exit code is returned with a nil error; a non-zero
// exit code is returned with a nil error as well, because a failing
// command inside the shell is not a janus failure — the caller decides
// to exit with that code. Errors are reserved for failures to run
// `docker exec` itself.
func ExecInteractive(ctx context.Context, containerName, workdir string, cmdArgs []string) (int, error) {
	args := []string{"exec", "-it"}
	if workdir != "" {
		args = append(args, "-w", workdir)
	}
	args = append(args, containerName)
	args = append(args, cmdArgs...)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// ExitError means docker exec ran and returned the inner command's
	// exit status. Anything else means the child process could not be
	// started at all (docker binary missing, context cancelled, ...).
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	return 0, model.WrapCLIError(
		model.ExitDockerNotRunning,
		fmt.Sprintf("failed to exec into container %q", containerName),
		err,
	)
}

// ExecProbe runs a command inside a container via the Docker SDK and
// waits up to timeout for it to complete. It returns nil only if the
// command exited with code 0 within the deadline.
func ExecProbe(ctx context.Context, cli *Client, containerID string, cmdArgs []string, timeout time.Duration) error {
	execResp, err := cli.Inner().ContainerExecCreate(ctx, containerID, container.ExecOptions{
		Cmd: cmdArgs,
	})
	if err != nil {
		return fmt.Errorf("exec create: %w", err)
	}

	if err := cli.Inner().ContainerExecStart(ctx, execResp.ID, container.ExecStartOptions{}); err != nil {
		return fmt.Errorf("exec start: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return fmt.Errorf("exec cancelled: %w", ctx.Err())
		}

		inspect, err := cli.Inner().ContainerExecInspect(ctx, execResp.ID)
		if err != nil {
			return fmt.Errorf("exec inspect: %w", err)
		}

		if !inspect.Running {
			if inspect.ExitCode == 0 {
				return nil
			}
			return fmt.Errorf("exec exited with code %d", inspect.ExitCode)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("exec cancelled: %w", ctx.Err())
		case <-time.After(execPollInterval):
		}
	}

	return fmt.Errorf("exec did not finish within %s", timeout)
}

// WaitForExec repeatedly runs ExecProbe until it succeeds or the overall
// deadline passes. Each attempt gets attemptTimeout; between failed
// attempts the poll interval is waited.
//
// This is the readiness gate for `dev up`: Redis accepts connections a
// beat after the container reports "running".
func WaitForExec(ctx context.Context, cli *Client, containerID string, cmdArgs []string, attemptTimeout, deadline time.Duration) error {
	end := time.Now().Add(deadline)
	var lastErr error

	for time.Now().Before(end) {
		lastErr = ExecProbe(ctx, cli, containerID, cmdArgs, attemptTimeout)
		if lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("readiness wait cancelled: %w", ctx.Err())
		case <-time.After(execPollInterval):
		}
	}

	return fmt.Errorf("container %q not ready after %s: %w", containerID, deadline, lastErr)
}
