package driving

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// HistoryService exposes the recorded toolchain runs.
type HistoryService interface {
	// List returns recent runs, most recent first.
	// A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Clear removes all recorded runs.
	Clear(ctx context.Context) error
}
