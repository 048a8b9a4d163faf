package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// Record persists a completed run.
func (s *runStore) Record(ctx context.Context, record *domain.RunRecord) error {
	if record == nil || record.ID == "" {
		return domain.ErrInvalidInput
	}

	argvJSON, err := json.Marshal(record.Argv)
	if err != nil {
		return fmt.Errorf("marshalling argv: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO runs (id, tool, argv, trigger_by, started_at, ended_at, exit_code, success, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			tool = excluded.tool,
			argv = excluded.argv,
			trigger_by = excluded.trigger_by,
			started_at = excluded.started_at,
			ended_at = excluded.ended_at,
			exit_code = excluded.exit_code,
			success = excluded.success,
			detail = excluded.detail
	`, record.ID, record.Tool.String(), string(argvJSON), record.Trigger.String(),
		record.StartedAt.UTC(), record.EndedAt.UTC(), record.ExitCode,
		boolToInt(record.Success), record.Detail)

	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns recent runs, most recent first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	query := `
		SELECT id, tool, argv, trigger_by, started_at, ended_at, exit_code, success, detail
		FROM runs ORDER BY started_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// ListByTool returns recent runs for one tool, most recent first.
func (s *runStore) ListByTool(ctx context.Context, tool domain.Tool, limit int) ([]domain.RunRecord, error) {
	query := `
		SELECT id, tool, argv, trigger_by, started_at, ended_at, exit_code, success, detail
		FROM runs WHERE tool = ? ORDER BY started_at DESC
	`
	args := []any{tool.String()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing runs for %s: %w", tool, err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Prune keeps only the most recent runs.
func (s *runStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return nil
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// Clear removes all recorded runs.
func (s *runStore) Clear(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return fmt.Errorf("clearing runs: %w", err)
	}
	return nil
}

// scanRuns scans all rows into run records.
func scanRuns(rows *sql.Rows) ([]domain.RunRecord, error) {
	var records []domain.RunRecord
	for rows.Next() {
		var record domain.RunRecord
		var tool, trigger, argvJSON string
		var success int

		if err := rows.Scan(&record.ID, &tool, &argvJSON, &trigger,
			&record.StartedAt, &record.EndedAt, &record.ExitCode,
			&success, &record.Detail); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}

		if err := json.Unmarshal([]byte(argvJSON), &record.Argv); err != nil {
			return nil, fmt.Errorf("unmarshalling argv: %w", err)
		}

		record.Tool = domain.Tool(tool)
		record.Trigger = domain.RunTrigger(trigger)
		record.Success = success != 0
		record.StartedAt = record.StartedAt.UTC()
		record.EndedAt = record.EndedAt.UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
