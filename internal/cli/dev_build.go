// Package cli — dev_build.go implements the "janus dev build" command.
//
// The build command produces the app image for the current workspace.
// The image tag is derived from the Git working tree (git describe)
// unless overridden, and the build receives the invoking user's
// UID/GID so files created inside the container stay owned by the
// host user.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/docker"
	"github.com/janus-labs/janus/internal/stack"
)

// buildFlags holds the flag values for the dev build command.
type buildFlags struct {
	version string // --version: explicit tag instead of git describe
}

// NewDevBuildCommand creates the "dev build" cobra command.
func NewDevBuildCommand() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the app image for the current workspace",
		Long: `Build the app container image from the workspace Dockerfile.

The image is tagged with the version derived from "git describe" (or
the --version override). The build receives VERSION, UID, GID, and
UV_VERSION build arguments.

Examples:
  janus dev build
  janus dev build --version 1.2.0`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevBuild(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.version, "version", "", "Image version tag (default: git describe)")

	return cmd
}

// runDevBuild orchestrates the image build.
func runDevBuild(ctx context.Context, flags *buildFlags) error {
	// Step 1: Load the stack config to get image name and Dockerfile.
	cfg, err := loadWorkspaceConfig()
	if err != nil {
		return err
	}
	VerboseLog("Workspace: %s", cfg.WorkspacePath)

	// Step 2: Resolve the version tag.
	version := flags.version
	if version == "" {
		version, err = stack.Version(cfg.WorkspacePath)
		if err != nil {
			return err
		}
	}
	VerboseLog("Version: %s", version)

	// Step 3: Run the build with the standard build arguments.
	tag := cfg.ImageTag(version)
	buildArgs := BuildArgs(version, cfg.UVVersion)

	fmt.Fprintf(os.Stderr, "Building %s...\n", tag)
	if err := docker.BuildImage(ctx, docker.BuildOptions{
		ContextDir: cfg.WorkspacePath,
		Dockerfile: cfg.Dockerfile,
		Tag:        tag,
		BuildArgs:  buildArgs,
	}); err != nil {
		return err
	}

	// Step 4: Report the result.
	if IsJSONOutput() {
		out := map[string]string{"image": tag, "version": version}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("Built %s\n", tag)
	}
	return nil
}

// BuildArgs returns the build arguments every app image build
// receives: the version tag, the invoking user's UID/GID, and the
// pinned uv version.
func BuildArgs(version, uvVersion string) map[string]string {
	return map[string]string{
		"VERSION":    version,
		"UID":        strconv.Itoa(os.Getuid()),
		"GID":        strconv.Itoa(os.Getgid()),
		"UV_VERSION": uvVersion,
	}
}
