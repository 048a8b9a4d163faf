package driving

import (
	"context"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// DoctorService inspects a workspace and reports its health.
type DoctorService interface {
	// Check runs every workspace check and returns the findings.
	// Individual check failures become findings, not errors; the
	// error return covers only the inability to run checks at all.
	Check(ctx context.Context) (*domain.CheckReport, error)
}
