package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestFileName is the manifest file webrig manages at the
// workspace root.
const ManifestFileName = "webrig.toml"

// ManifestStore is a file-based implementation of driven.ManifestStore
// using TOML.
type ManifestStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewManifestStore creates a manifest store for the given workspace
// directory.
func NewManifestStore(workDir string) *ManifestStore {
	return &ManifestStore{
		filePath: filepath.Join(workDir, ManifestFileName),
	}
}

// Load reads and validates the manifest.
func (s *ManifestStore) Load(_ context.Context) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNoManifest
		}
		return nil, err
	}

	var project domain.Project
	if err := toml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidManifest, err)
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}

	return &project, nil
}

// Save validates and writes the manifest.
func (s *ManifestStore) Save(_ context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(project)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write-then-rename keeps a crash from truncating the manifest.
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

// Exists reports whether a manifest file is present.
func (s *ManifestStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.filePath)
	return err == nil
}

// Path returns the manifest file path.
func (s *ManifestStore) Path() string {
	return s.filePath
}
