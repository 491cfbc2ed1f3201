// version.go derives the app image version tag from Git.
//
// The tag mirrors what the original build tooling passed as the VERSION
// build arg: `git describe --tags --always --dirty`, which yields the
// nearest tag plus commit distance (e.g. "v0.3.1-4-gdeadbee"), a bare
// short hash on tagless repos, and a "-dirty" suffix for uncommitted
// changes.
//
// We shell out to `git` rather than using a Go Git library because
// describe semantics (tag ordering, candidates, dirty detection) are
// subtle and the CLI is the reference implementation.
package stack

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/janus-labs/janus/internal/model"
)

// Version returns the version tag for the workspace, from
// `git describe --tags --always --dirty`.
//
// Returns a CLIError with ExitGitError if git fails, which usually means
// the workspace is not a Git repository. `dev build --version` lets the
// user bypass Git entirely in that case.
func Version(workspacePath string) (string, error) {
	return runGit(workspacePath, "describe", "--tags", "--always", "--dirty")
}

// CommitHash returns the short commit hash of HEAD in the workspace.
func CommitHash(workspacePath string) (string, error) {
	return runGit(workspacePath, "rev-parse", "--short", "HEAD")
}

// runGit executes a git command in the given directory and returns its
// trimmed stdout. Stderr is folded into the error message because git
// writes its diagnostics there.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", model.WrapCLIError(
			model.ExitGitError,
			fmt.Sprintf("git %s failed: %s",
				strings.Join(args, " "), strings.TrimSpace(string(output))),
			err,
		)
	}

	return strings.TrimSpace(string(output)), nil
}
