package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Package name rules follow the npm registry: lowercase, URL-safe,
// optionally scoped, at most 214 characters including the scope.
const maxProjectNameLength = 214

var projectNamePattern = regexp.MustCompile(`^(?:@[a-z0-9\-~][a-z0-9\-._~]*/)?[a-z0-9\-~][a-z0-9\-._~]*$`)

// Project is the manifest describing a managed front-end workspace.
// It is the single source of truth from which every tool config file
// is rendered.
type Project struct {
	// Name is the workspace package name, npm-style.
	Name string `toml:"name"`

	// Version is the workspace package version.
	Version string `toml:"version"`

	// Preset records the starter flavour the workspace was created from.
	Preset Preset `toml:"preset"`

	// Bundle configures the module bundler.
	Bundle BundleConfig `toml:"bundle"`

	// Transpile configures the source-to-source compiler.
	Transpile TranspileConfig `toml:"transpile"`

	// Lint configures static analysis.
	Lint LintConfig `toml:"lint"`

	// Format configures the code formatter.
	Format FormatConfig `toml:"format"`

	// Serve configures the development server.
	Serve ServeConfig `toml:"serve"`
}

// Validate checks the manifest for correctness. It aggregates the
// section validations so one call reports the first problem anywhere
// in the manifest.
func (p *Project) Validate() error {
	if err := ValidateProjectName(p.Name); err != nil {
		return err
	}
	if p.Version == "" {
		return fmt.Errorf("%w: version must not be empty", ErrInvalidManifest)
	}
	if !p.Preset.IsValid() {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidManifest, p.Preset)
	}
	// The preset dictates the starter sources, so the compiler must be
	// able to parse them: react presets need the JSX preset, react-ts
	// additionally needs type stripping.
	if p.Preset.UsesReact() && !p.Transpile.React {
		return fmt.Errorf("%w: preset %s requires transpile react = true", ErrInvalidManifest, p.Preset)
	}
	if p.Preset.UsesTypeScript() && !p.Transpile.TypeScript {
		return fmt.Errorf("%w: preset %s requires transpile typescript = true", ErrInvalidManifest, p.Preset)
	}
	if err := p.Bundle.Validate(); err != nil {
		return err
	}
	if err := p.Transpile.Validate(); err != nil {
		return err
	}
	if err := p.Lint.Validate(); err != nil {
		return err
	}
	if err := p.Format.Validate(); err != nil {
		return err
	}
	if err := p.Serve.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateProjectName checks a workspace package name against the npm
// naming rules.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidManifest)
	}
	if len(name) > maxProjectNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidManifest, maxProjectNameLength)
	}
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: name must not contain leading or trailing whitespace", ErrInvalidManifest)
	}
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("%w: name %q is not a valid package name", ErrInvalidManifest, name)
	}
	return nil
}

// DefaultProject returns a manifest with sensible defaults for the
// given preset. The zero name is filled in by the caller.
func DefaultProject(name string, preset Preset) *Project {
	return &Project{
		Name:      name,
		Version:   "0.1.0",
		Preset:    preset,
		Bundle:    DefaultBundleConfig(preset),
		Transpile: DefaultTranspileConfig(preset),
		Lint:      DefaultLintConfig(preset),
		Format:    DefaultFormatConfig(),
		Serve:     DefaultServeConfig(),
	}
}
