package driving

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ToolchainService drives the external front-end tools against the
// workspace. Every invocation is recorded in run history.
type ToolchainService interface {
	// Build bundles the workspace. With Production set, the bundler
	// config is rendered in production mode for this run.
	Build(ctx context.Context, opts BuildOptions) (*domain.RunRecord, error)

	// Lint analyses the workspace sources. Fix applies safe fixes.
	Lint(ctx context.Context, opts LintOptions) (*domain.RunRecord, error)

	// Format rewrites sources with the formatter. With CheckOnly set,
	// nothing is written and drift is reported via the exit code.
	Format(ctx context.Context, opts FormatOptions) (*domain.RunRecord, error)

	// Watch re-runs the given tool whenever workspace sources change.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, tool domain.Tool) error
}

// BuildOptions controls a bundler run.
type BuildOptions struct {
	// Production builds with the production profile.
	Production bool
}

// LintOptions controls a linter run.
type LintOptions struct {
	// Fix applies automatic fixes.
	Fix bool

	// Paths restricts analysis to the given paths. Empty means the
	// whole source tree.
	Paths []string
}

// FormatOptions controls a formatter run.
type FormatOptions struct {
	// CheckOnly reports drift without rewriting files.
	CheckOnly bool

	// Paths restricts formatting to the given paths. Empty means the
	// whole source tree.
	Paths []string
}
