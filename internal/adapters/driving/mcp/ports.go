package mcp

import (
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// Ports aggregates everything the MCP server exposes to assistants.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Manifest reads the workspace manifest.
	Manifest driven.ManifestStore

	// Doctor runs workspace checks for the check_project tool.
	Doctor driving.DoctorService

	// History lists recorded runs for the runs resource. Optional;
	// without it the resource reports an empty list.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Manifest == nil {
		return ErrMissingManifestStore
	}
	if p.Doctor == nil {
		return ErrMissingDoctorService
	}
	// History is optional
	return nil
}
