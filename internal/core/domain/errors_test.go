package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrInvalidManifest", ErrInvalidManifest},
		{"ErrNoManifest", ErrNoManifest},
		{"ErrToolNotFound", ErrToolNotFound},
		{"ErrRunInProgress", ErrRunInProgress},
		{"ErrWorkspaceExists", ErrWorkspaceExists},
		{"ErrUnsafePath", ErrUnsafePath},
		{"ErrTemplateNotFound", ErrTemplateNotFound},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Uniqueness tests that all errors are distinct
func TestErrors_Uniqueness(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrInvalidManifest,
		ErrNoManifest,
		ErrToolNotFound,
		ErrRunInProgress,
		ErrWorkspaceExists,
		ErrUnsafePath,
		ErrTemplateNotFound,
		ErrRateLimited,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j {
				assert.False(t, errors.Is(err1, err2),
					"Error %v should not match error %v", err1, err2)
			}
		}
	}
}

// TestErrNoManifest tests ErrNoManifest error
func TestErrNoManifest(t *testing.T) {
	assert.Equal(t, "no manifest found", ErrNoManifest.Error())
	assert.True(t, errors.Is(ErrNoManifest, ErrNoManifest))
	assert.False(t, errors.Is(ErrNoManifest, ErrInvalidManifest))
}

// TestErrToolNotFound tests ErrToolNotFound error
func TestErrToolNotFound(t *testing.T) {
	assert.Equal(t, "tool not found", ErrToolNotFound.Error())
	assert.True(t, errors.Is(ErrToolNotFound, ErrToolNotFound))
	assert.False(t, errors.Is(ErrToolNotFound, ErrNotFound))
}

// TestErrors_WithWrapping tests error wrapping behavior
func TestErrors_WithWrapping(t *testing.T) {
	wrappedErr := fmt.Errorf("%w: name %q is not a valid package name", ErrInvalidManifest, "Bad Name")

	assert.True(t, errors.Is(wrappedErr, ErrInvalidManifest))
	assert.Contains(t, wrappedErr.Error(), "invalid manifest")
	assert.Contains(t, wrappedErr.Error(), "Bad Name")
}

// TestErrors_InSwitchStatement tests using errors in switch statements
func TestErrors_InSwitchStatement(t *testing.T) {
	testErr := fmt.Errorf("loading manifest: %w", ErrNoManifest)

	var result string
	switch {
	case errors.Is(testErr, ErrNoManifest):
		result = "no manifest"
	case errors.Is(testErr, ErrInvalidManifest):
		result = "invalid manifest"
	default:
		result = "unknown"
	}

	assert.Equal(t, "no manifest", result)
}
