package driven

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ManifestStore persists the workspace manifest.
// Implementations handle serialisation (e.g., TOML files) and atomic writes.
type ManifestStore interface {
	// Load reads the manifest from storage.
	// Returns domain.ErrNoManifest if no manifest file exists.
	Load(ctx context.Context) (*domain.Project, error)

	// Save persists the manifest to storage.
	// The manifest is validated before writing.
	Save(ctx context.Context, project *domain.Project) error

	// Exists reports whether a manifest file is present.
	Exists() bool

	// Path returns the manifest file path.
	Path() string
}
