package domain

import (
	"time"
)

// Tool identifies an external toolchain binary the runner can invoke.
type Tool string

// Available tools.
const (
	// ToolBundler is the module bundler.
	ToolBundler Tool = "webpack"

	// ToolTranspiler is the source-to-source compiler.
	ToolTranspiler Tool = "babel"

	// ToolLinter is the static analyser.
	ToolLinter Tool = "eslint"

	// ToolFormatter is the code formatter.
	ToolFormatter Tool = "prettier"

	// ToolDevServer is webrig's own development server. It appears in
	// run history but is never invoked through the package runner.
	ToolDevServer Tool = "devserver"
)

// IsValid returns true if the tool is recognised.
func (t Tool) IsValid() bool {
	switch t {
	case ToolBundler, ToolTranspiler, ToolLinter, ToolFormatter, ToolDevServer:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Tool) String() string {
	return string(t)
}

// Description returns a human-readable description of the tool.
func (t Tool) Description() string {
	switch t {
	case ToolBundler:
		return "Module bundler"
	case ToolTranspiler:
		return "Source compiler"
	case ToolLinter:
		return "Static analyser"
	case ToolFormatter:
		return "Code formatter"
	case ToolDevServer:
		return "Development server"
	default:
		return unknownDescription
	}
}

// AllTools returns all available tools in display order.
func AllTools() []Tool {
	return []Tool{
		ToolBundler,
		ToolTranspiler,
		ToolLinter,
		ToolFormatter,
		ToolDevServer,
	}
}

// RunTrigger records what started a toolchain run.
type RunTrigger string

// Available run triggers.
const (
	// TriggerManual marks a run started by an explicit command.
	TriggerManual RunTrigger = "manual"

	// TriggerWatch marks a run started by a file change in watch mode.
	TriggerWatch RunTrigger = "watch"
)

// IsValid returns true if the trigger is recognised.
func (t RunTrigger) IsValid() bool {
	switch t {
	case TriggerManual, TriggerWatch:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t RunTrigger) String() string {
	return string(t)
}

// RunRecord is one completed toolchain invocation kept in history.
type RunRecord struct {
	// ID uniquely identifies the run.
	ID string

	// Tool is the binary that was invoked.
	Tool Tool

	// Argv is the full argument vector after the tool name.
	Argv []string

	// Trigger records what started the run.
	Trigger RunTrigger

	// StartedAt is when the invocation began.
	StartedAt time.Time

	// EndedAt is when the invocation finished.
	EndedAt time.Time

	// ExitCode is the tool's exit status. Non-zero is a normal result
	// for linters and type checkers, not a runner failure.
	ExitCode int

	// Success is true when the tool exited zero.
	Success bool

	// Detail optionally carries a short outcome note, such as the
	// number of files written or the first reported problem.
	Detail string
}

// Duration returns how long the run took.
func (r *RunRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}
