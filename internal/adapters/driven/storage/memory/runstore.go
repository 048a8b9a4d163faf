package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore,
// used in tests.
type RunStore struct {
	mu   sync.RWMutex
	runs []domain.RunRecord
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// Record persists a run.
func (s *RunStore) Record(_ context.Context, record *domain.RunRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *record)
	return nil
}

// List returns runs most recent first.
func (s *RunStore) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(limit, func(domain.RunRecord) bool { return true }), nil
}

// ListByTool returns runs for one tool, most recent first.
func (s *RunStore) ListByTool(_ context.Context, tool domain.Tool, limit int) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(limit, func(r domain.RunRecord) bool { return r.Tool == tool }), nil
}

// Prune keeps only the most recent runs.
func (s *RunStore) Prune(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if keep < 0 || len(s.runs) <= keep {
		return nil
	}
	sorted := s.sorted(0, func(domain.RunRecord) bool { return true })
	s.runs = sorted[:keep]
	return nil
}

// Clear removes all runs.
func (s *RunStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = nil
	return nil
}

func (s *RunStore) sorted(limit int, keep func(domain.RunRecord) bool) []domain.RunRecord {
	result := make([]domain.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		if keep(run) {
			result = append(result, run)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
