package mcp

import "errors"

// Configuration errors returned when required ports are missing.
var (
	// ErrMissingManifestStore indicates no manifest store was provided.
	ErrMissingManifestStore = errors.New("mcp: manifest store is required")

	// ErrMissingDoctorService indicates no doctor service was provided.
	ErrMissingDoctorService = errors.New("mcp: doctor service is required")
)
