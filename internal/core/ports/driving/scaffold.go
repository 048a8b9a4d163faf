package driving

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ScaffoldService creates workspaces and keeps rendered tool config
// files in step with the manifest.
type ScaffoldService interface {
	// Init creates a new workspace: manifest, starter sources and
	// rendered tool configs. Returns domain.ErrWorkspaceExists if a
	// manifest is already present and Force is not set.
	Init(ctx context.Context, opts InitOptions) (*domain.Project, error)

	// Sync re-renders every tool config file from the manifest,
	// overwriting drifted files. package.json is left alone once it
	// exists.
	Sync(ctx context.Context) (*SyncResult, error)

	// Diff reports, without writing, which rendered files are missing
	// or differ from what the manifest would produce.
	Diff(ctx context.Context) ([]FileDiff, error)
}

// InitOptions controls workspace creation.
type InitOptions struct {
	// Name is the package name for the new workspace.
	Name string

	// Preset selects the embedded starter flavour.
	Preset domain.Preset

	// Template optionally names a remote template as owner/repo,
	// used instead of the embedded starter.
	Template string

	// Force allows initialising over an existing manifest.
	Force bool
}

// SyncResult summarises one config sync pass.
type SyncResult struct {
	// Written lists the files that were created or rewritten.
	Written []string

	// Unchanged lists the files that already matched.
	Unchanged []string
}

// DiffState classifies one rendered file against the manifest.
type DiffState string

// Diff states.
const (
	// DiffCurrent means the file matches what would be rendered.
	DiffCurrent DiffState = "current"

	// DiffStale means the file exists but differs.
	DiffStale DiffState = "stale"

	// DiffMissing means the file does not exist yet.
	DiffMissing DiffState = "missing"
)

// FileDiff is the drift state of one rendered config file.
type FileDiff struct {
	// Path is the file path relative to the workspace root.
	Path string

	// State classifies the drift.
	State DiffState
}
