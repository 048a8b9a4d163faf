package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// BundleMode selects which build profile the bundler config is
// rendered for.
type BundleMode string

// Available bundle modes.
const (
	// BundleModeDevelopment favours fast rebuilds and readable output.
	BundleModeDevelopment BundleMode = "development"

	// BundleModeProduction favours small, optimised output.
	BundleModeProduction BundleMode = "production"
)

// IsValid returns true if the mode is recognised.
func (m BundleMode) IsValid() bool {
	switch m {
	case BundleModeDevelopment, BundleModeProduction:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m BundleMode) String() string {
	return string(m)
}

// AllBundleModes returns all available modes in display order.
func AllBundleModes() []BundleMode {
	return []BundleMode{
		BundleModeDevelopment,
		BundleModeProduction,
	}
}

// BundleOutput describes where bundled artefacts are written.
type BundleOutput struct {
	// Dir is the output directory, relative to the workspace root.
	Dir string `toml:"dir"`

	// Filename is the chunk filename template. The [name] token is
	// substituted with the entry name at build time.
	Filename string `toml:"filename"`
}

// LoaderRule maps a source file pattern onto a loader chain.
type LoaderRule struct {
	// Test is a regular expression matched against module paths.
	Test string `toml:"test"`

	// Exclude is an optional regular expression for paths the rule
	// must skip, typically vendored dependencies.
	Exclude string `toml:"exclude,omitempty"`

	// Use lists the loaders applied to matching modules. Loaders run
	// last to first, so the final transformation comes first here.
	Use []string `toml:"use"`
}

// Validate checks the rule patterns compile and a loader chain exists.
func (r *LoaderRule) Validate() error {
	if r.Test == "" {
		return fmt.Errorf("%w: loader rule test must not be empty", ErrInvalidManifest)
	}
	if _, err := regexp.Compile(r.Test); err != nil {
		return fmt.Errorf("%w: loader rule test %q does not compile: %v", ErrInvalidManifest, r.Test, err)
	}
	if r.Exclude != "" {
		if _, err := regexp.Compile(r.Exclude); err != nil {
			return fmt.Errorf("%w: loader rule exclude %q does not compile: %v", ErrInvalidManifest, r.Exclude, err)
		}
	}
	if len(r.Use) == 0 {
		return fmt.Errorf("%w: loader rule %q has no loaders", ErrInvalidManifest, r.Test)
	}
	for _, loader := range r.Use {
		if strings.TrimSpace(loader) == "" {
			return fmt.Errorf("%w: loader rule %q has an empty loader entry", ErrInvalidManifest, r.Test)
		}
	}
	return nil
}

// PluginRef names a bundler plugin and its options.
type PluginRef struct {
	// Name is the plugin package name as required at config time.
	Name string `toml:"name"`

	// Options holds plugin constructor options. Keys are rendered in
	// sorted order so output is deterministic.
	Options map[string]any `toml:"options,omitempty"`
}

// OptimizeConfig holds the bundler optimisation switches.
type OptimizeConfig struct {
	// Minify enables output minification.
	Minify bool `toml:"minify"`

	// SplitChunks extracts shared modules into a common chunk.
	SplitChunks bool `toml:"split_chunks"`
}

// BundleConfig is the manifest section for the module bundler.
type BundleConfig struct {
	// Mode selects the build profile.
	Mode BundleMode `toml:"mode"`

	// Entries maps entry names onto their source files.
	Entries map[string]string `toml:"entries"`

	// Output describes where bundles are written.
	Output BundleOutput `toml:"output"`

	// Rules are the loader rules, applied in order.
	Rules []LoaderRule `toml:"rules"`

	// Plugins lists the configured bundler plugins.
	Plugins []PluginRef `toml:"plugins"`

	// Optimize holds the optimisation switches.
	Optimize OptimizeConfig `toml:"optimize"`
}

// Validate checks the bundler section for correctness.
func (c *BundleConfig) Validate() error {
	if !c.Mode.IsValid() {
		return fmt.Errorf("%w: unknown bundle mode %q", ErrInvalidManifest, c.Mode)
	}
	if len(c.Entries) == 0 {
		return fmt.Errorf("%w: bundle needs at least one entry", ErrInvalidManifest)
	}
	for name, path := range c.Entries {
		if name == "" {
			return fmt.Errorf("%w: bundle entry name must not be empty", ErrInvalidManifest)
		}
		if err := validateWorkspacePath(path); err != nil {
			return fmt.Errorf("%w: bundle entry %q: %v", ErrInvalidManifest, name, err)
		}
	}
	if err := validateWorkspacePath(c.Output.Dir); err != nil {
		return fmt.Errorf("%w: bundle output dir: %v", ErrInvalidManifest, err)
	}
	if c.Output.Filename == "" {
		return fmt.Errorf("%w: bundle output filename must not be empty", ErrInvalidManifest)
	}
	for i := range c.Rules {
		if err := c.Rules[i].Validate(); err != nil {
			return err
		}
	}
	for _, plugin := range c.Plugins {
		if strings.TrimSpace(plugin.Name) == "" {
			return fmt.Errorf("%w: bundle plugin name must not be empty", ErrInvalidManifest)
		}
	}
	return nil
}

// EntryNames returns the entry names in sorted order. Map iteration is
// unordered, and rendered configs must be deterministic.
func (c *BundleConfig) EntryNames() []string {
	names := make([]string, 0, len(c.Entries))
	for name := range c.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBundleConfig returns the bundler defaults for a preset.
func DefaultBundleConfig(preset Preset) BundleConfig {
	entry := "./src/app.js"
	scriptTest := `\.jsx?$`
	switch preset {
	case PresetReact:
		entry = "./src/index.jsx"
	case PresetReactTS:
		entry = "./src/index.tsx"
		scriptTest = `\.[jt]sx?$`
	}

	return BundleConfig{
		Mode:    BundleModeDevelopment,
		Entries: map[string]string{"main": entry},
		Output: BundleOutput{
			Dir:      "dist",
			Filename: "[name].js",
		},
		Rules: []LoaderRule{
			{
				Test:    scriptTest,
				Exclude: `node_modules`,
				Use:     []string{"babel-loader"},
			},
			{
				Test: `\.css$`,
				Use:  []string{"style-loader", "css-loader"},
			},
		},
		Plugins: []PluginRef{
			{
				Name:    "html-webpack-plugin",
				Options: map[string]any{"template": "public/index.html"},
			},
		},
		Optimize: OptimizeConfig{
			Minify:      false,
			SplitChunks: false,
		},
	}
}

// validateWorkspacePath rejects paths that leave the workspace root.
func validateWorkspacePath(path string) error {
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("path %q must be relative to the workspace", path)
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path %q escapes the workspace", path)
	}
	return nil
}
