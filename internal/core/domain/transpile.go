package domain

import (
	"fmt"
	"strings"
)

// ReactRuntime selects how JSX is lowered by the compiler.
type ReactRuntime string

// Available JSX runtimes.
const (
	// ReactRuntimeClassic lowers JSX to createElement calls and
	// requires the UI library to be in scope.
	ReactRuntimeClassic ReactRuntime = "classic"

	// ReactRuntimeAutomatic imports the JSX factory automatically.
	ReactRuntimeAutomatic ReactRuntime = "automatic"
)

// IsValid returns true if the runtime is recognised.
func (r ReactRuntime) IsValid() bool {
	switch r {
	case ReactRuntimeClassic, ReactRuntimeAutomatic:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (r ReactRuntime) String() string {
	return string(r)
}

// TranspileConfig is the manifest section for the source-to-source
// compiler. It maps onto a preset-env target, an optional JSX preset
// and optional type stripping.
type TranspileConfig struct {
	// Targets is the browserslist-style environment query handed to
	// the env preset, for example "defaults" or "> 0.25%, not dead".
	Targets string `toml:"targets"`

	// React enables the JSX preset.
	React bool `toml:"react"`

	// ReactRuntime selects the JSX lowering, classic or automatic.
	ReactRuntime ReactRuntime `toml:"react_runtime,omitempty"`

	// TypeScript enables the type-stripping preset.
	TypeScript bool `toml:"typescript"`

	// OutputDir is where standalone compiler invocations write their
	// output, relative to the workspace root.
	OutputDir string `toml:"output_dir"`
}

// Validate checks the compiler section for correctness.
func (c *TranspileConfig) Validate() error {
	if strings.TrimSpace(c.Targets) == "" {
		return fmt.Errorf("%w: transpile targets must not be empty", ErrInvalidManifest)
	}
	if c.React && !c.ReactRuntime.IsValid() {
		return fmt.Errorf("%w: unknown react runtime %q", ErrInvalidManifest, c.ReactRuntime)
	}
	if err := validateWorkspacePath(c.OutputDir); err != nil {
		return fmt.Errorf("%w: transpile output dir: %v", ErrInvalidManifest, err)
	}
	return nil
}

// DefaultTranspileConfig returns the compiler defaults for a preset.
func DefaultTranspileConfig(preset Preset) TranspileConfig {
	cfg := TranspileConfig{
		Targets:    "defaults",
		OutputDir:  "build",
		React:      preset.UsesReact(),
		TypeScript: preset.UsesTypeScript(),
	}
	if cfg.React {
		cfg.ReactRuntime = ReactRuntimeAutomatic
	}
	return cfg
}
