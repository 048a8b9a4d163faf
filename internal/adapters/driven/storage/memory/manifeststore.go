package memory

import (
	"context"
	"sync"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is an in-memory implementation of driven.ManifestStore,
// used in tests.
type ManifestStore struct {
	mu      sync.RWMutex
	project *domain.Project
}

// NewManifestStore creates a new in-memory manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{}
}

// Load returns the stored manifest.
func (s *ManifestStore) Load(_ context.Context) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.project == nil {
		return nil, domain.ErrNoManifest
	}
	copied := *s.project
	return &copied, nil
}

// Save stores the manifest after validating it.
func (s *ManifestStore) Save(_ context.Context, project *domain.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *project
	s.project = &copied
	return nil
}

// Exists reports whether a manifest has been saved.
func (s *ManifestStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.project != nil
}

// Path returns a placeholder path.
func (s *ManifestStore) Path() string {
	return "webrig.toml"
}
