package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a capability is not wired up,
	// typically an optional dependency that was not provided.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidManifest indicates the project manifest failed validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrNoManifest indicates no manifest file exists in the workspace.
	// Commands that need one suggest running `webrig init`.
	ErrNoManifest = errors.New("no manifest found")

	// Toolchain Errors.

	// ErrToolNotFound indicates an external tool binary is not installed.
	ErrToolNotFound = errors.New("tool not found")

	// ErrRunInProgress indicates a watch-mode run is already active.
	ErrRunInProgress = errors.New("run in progress")

	// Scaffold Errors.

	// ErrWorkspaceExists indicates the target directory already holds a
	// manifest and --force was not given.
	ErrWorkspaceExists = errors.New("workspace already initialised")

	// ErrUnsafePath indicates an archive or config entry would escape
	// the workspace directory.
	ErrUnsafePath = errors.New("unsafe path")

	// Registry Errors.

	// ErrTemplateNotFound indicates the requested starter template does
	// not exist or is not tagged as a template.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrRateLimited indicates the registry API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
