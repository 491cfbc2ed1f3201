// build.go implements `docker build` invocation for the app image.
//
// The build shells out to the docker CLI rather than using the SDK's
// ImageBuild endpoint: the SDK path requires assembling a tar stream of
// the build context by hand, while the CLI handles context upload,
// .dockerignore, and BuildKit progress output itself. This mirrors the
// trade made for container creation in container.go.
package docker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/janus-labs/janus/internal/model"
)

// BuildOptions describes a single image build.
type BuildOptions struct {
	// ContextDir is the build context directory (the project root).
	ContextDir string

	// Dockerfile is the path to the Dockerfile, relative to ContextDir.
	// Empty means the Docker default ("Dockerfile").
	Dockerfile string

	// Tag is the full image reference to tag the result with,
	// e.g. "janus:v0.3.1-4-gdeadbee".
	Tag string

	// BuildArgs are passed as --build-arg KEY=VALUE pairs. The dev build
	// populates VERSION, UID, GID, and UV_VERSION here.
	BuildArgs map[string]string
}

// BuildImage runs "docker build" with the given options, streaming build
// output directly to the caller's stdout/stderr so the user sees layer
// progress as it happens.
//
// Build args are emitted in sorted key order so the produced command line
// is deterministic (useful when --verbose echoes it).
func BuildImage(ctx context.Context, opts BuildOptions) error {
	args := []string{"build", "-t", opts.Tag}

	if opts.Dockerfile != "" {
		args = append(args, "-f", opts.Dockerfile)
	}

	keys := make([]string, 0, len(opts.BuildArgs))
	for k := range opts.BuildArgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "--build-arg", fmt.Sprintf("%s=%s", k, opts.BuildArgs[k]))
	}

	args = append(args, ".")

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Dir = opts.ContextDir
	// Build output goes straight to the terminal; capturing it would only
	// delay feedback on long builds.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("docker build failed for image %q", opts.Tag),
			err,
		)
	}

	return nil
}
