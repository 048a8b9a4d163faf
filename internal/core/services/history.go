package services

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService exposes the recorded toolchain runs.
type HistoryService struct {
	runStore driven.RunStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(runStore driven.RunStore) *HistoryService {
	return &HistoryService{runStore: runStore}
}

// List returns recent runs, most recent first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.runStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.runStore.List(ctx, limit)
}

// Clear removes all recorded runs.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.runStore == nil {
		return domain.ErrNotImplemented
	}
	return s.runStore.Clear(ctx)
}
