// Package cli — dev_status.go implements the "janus dev status"
// command.
//
// Status queries Docker for the stack's labelled containers and shows
// their aggregate and per-container state as a text table or JSON.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/janus-labs/janus/internal/model"
)

// NewDevStatusCommand creates the "dev status" cobra command.
func NewDevStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the development stack status",
		Long: `Show the status of the stack for the current workspace.

Stack state is read entirely from Docker labels; a stack is "running"
when all its containers are running, "stopped" when none are, and
"degraded" otherwise.

Examples:
  janus dev status
  janus dev status --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDevStatus(cmd.Context())
		},
	}

	return cmd
}

// runDevStatus prints the stack status.
func runDevStatus(ctx context.Context) error {
	cli, err := connectDocker(ctx)
	if err != nil {
		return err
	}
	defer cli.Close()

	cfg, err := loadWorkspaceConfig()
	if err != nil {
		return err
	}

	st, err := findStack(ctx, cli, cfg.Name)
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		data, marshalErr := json.MarshalIndent(st, "", "  ")
		if marshalErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode status", marshalErr)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Print(FormatStackStatus(st))
	return nil
}

// FormatStackStatus renders the text table for the status command.
func FormatStackStatus(st *model.Stack) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Stack:   %s\n", st.Name)
	fmt.Fprintf(&b, "Status:  %s\n", st.Status)
	if st.Version != "" {
		fmt.Fprintf(&b, "Version: %s\n", st.Version)
	}
	if st.WorkspacePath != "" {
		fmt.Fprintf(&b, "Path:    %s\n", st.WorkspacePath)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-8s %-24s %-12s %s\n", "ROLE", "CONTAINER", "STATUS", "IMAGE")
	for _, c := range st.Containers {
		role := string(c.Role)
		if role == "" {
			role = "-"
		}
		fmt.Fprintf(&b, "%-8s %-24s %-12s %s\n", role, c.ContainerName, c.Status, c.Image)
	}

	return b.String()
}
