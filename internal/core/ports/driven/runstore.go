package driven

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// RunStore persists toolchain run history.
// It backs the runs command and the doctor's recent-failure check.
type RunStore interface {
	// Record persists a completed run.
	Record(ctx context.Context, record *domain.RunRecord) error

	// List returns recent runs ordered by start time descending
	// (most recent first). A limit of 0 means no limit.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// ListByTool returns recent runs for one tool, most recent first.
	ListByTool(ctx context.Context, tool domain.Tool, limit int) ([]domain.RunRecord, error)

	// Prune removes old runs beyond the retention limit.
	// Keeps the most recent 'keep' runs.
	Prune(ctx context.Context, keep int) error

	// Clear removes all recorded runs.
	Clear(ctx context.Context) error
}
