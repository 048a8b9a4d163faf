package driven

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ToolResult is the observed outcome of one tool invocation.
// A non-zero exit code is a normal result, not a runner error.
type ToolResult struct {
	// ExitCode is the tool's exit status.
	ExitCode int

	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string
}

// Success returns true when the tool exited zero.
func (r *ToolResult) Success() bool {
	return r.ExitCode == 0
}

// ToolRunner invokes external toolchain binaries.
// Implementations locate tools through the package runner so only
// workspace-local installations are used.
type ToolRunner interface {
	// Run invokes a tool with the given arguments and waits for it.
	// Returns domain.ErrToolNotFound if the tool is not installed.
	// Tool failures are reported through ToolResult, not through error.
	Run(ctx context.Context, tool domain.Tool, args []string) (*ToolResult, error)

	// Version reports the version of an arbitrary binary, such as
	// node or npm, by invoking it with --version.
	// Returns domain.ErrToolNotFound if the binary is not on PATH.
	Version(ctx context.Context, binary string) (string, error)
}
