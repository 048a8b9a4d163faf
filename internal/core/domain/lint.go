package domain

import (
	"fmt"
	"sort"
	"strconv"
)

// RuleSeverity is the reporting level of a single lint rule.
type RuleSeverity string

// Available rule severities.
const (
	// SeverityOff disables the rule.
	SeverityOff RuleSeverity = "off"

	// SeverityWarn reports violations without affecting the exit code.
	SeverityWarn RuleSeverity = "warn"

	// SeverityError reports violations and fails the run.
	SeverityError RuleSeverity = "error"
)

// IsValid returns true if the severity is recognised.
func (s RuleSeverity) IsValid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s RuleSeverity) String() string {
	return string(s)
}

// ParseRuleSeverity converts a severity given either by name or by the
// numeric form the linter also accepts (0, 1, 2).
func ParseRuleSeverity(value string) (RuleSeverity, error) {
	switch value {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	default:
		return "", fmt.Errorf("%w: unknown rule severity %q", ErrInvalidInput, value)
	}
}

// SourceType tells the parser how to treat top-level code.
type SourceType string

// Available source types.
const (
	// SourceTypeScript parses files as classic scripts.
	SourceTypeScript SourceType = "script"

	// SourceTypeModule parses files as ES modules.
	SourceTypeModule SourceType = "module"
)

// IsValid returns true if the source type is recognised.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeScript, SourceTypeModule:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t SourceType) String() string {
	return string(t)
}

// Environments the linter can predefine globals for.
var lintEnvs = map[string]bool{
	"browser": true,
	"node":    true,
	"es6":     true,
	"es2020":  true,
	"es2021":  true,
	"es2022":  true,
	"jest":    true,
}

// LintConfig is the manifest section for static analysis.
type LintConfig struct {
	// Envs lists the runtime environments whose globals are assumed.
	Envs []string `toml:"envs"`

	// EcmaVersion is the language edition the parser accepts. Zero
	// means latest; otherwise 5 or a year edition such as 2022.
	EcmaVersion int `toml:"ecma_version"`

	// SourceType selects script or module parsing.
	SourceType SourceType `toml:"source_type"`

	// Extends lists the shared configs layered underneath the rules.
	Extends []string `toml:"extends"`

	// Rules maps rule names onto their severity.
	Rules map[string]RuleSeverity `toml:"rules"`
}

// Validate checks the lint section for correctness.
func (c *LintConfig) Validate() error {
	for _, env := range c.Envs {
		if !lintEnvs[env] {
			return fmt.Errorf("%w: unknown lint environment %q", ErrInvalidManifest, env)
		}
	}
	if !validEcmaVersion(c.EcmaVersion) {
		return fmt.Errorf("%w: unsupported ecma version %d", ErrInvalidManifest, c.EcmaVersion)
	}
	if !c.SourceType.IsValid() {
		return fmt.Errorf("%w: unknown source type %q", ErrInvalidManifest, c.SourceType)
	}
	for name, severity := range c.Rules {
		if name == "" {
			return fmt.Errorf("%w: lint rule name must not be empty", ErrInvalidManifest)
		}
		if !severity.IsValid() {
			return fmt.Errorf("%w: lint rule %q has unknown severity %q", ErrInvalidManifest, name, severity)
		}
	}
	return nil
}

// RuleNames returns the configured rule names in sorted order.
func (c *LintConfig) RuleNames() []string {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EcmaVersionLabel renders the edition the way the linter config
// expects it, with zero mapping to "latest".
func (c *LintConfig) EcmaVersionLabel() string {
	if c.EcmaVersion == 0 {
		return "latest"
	}
	return strconv.Itoa(c.EcmaVersion)
}

func validEcmaVersion(version int) bool {
	if version == 0 || version == 5 {
		return true
	}
	return version >= 2015 && version <= 2024
}

// DefaultLintConfig returns the lint defaults for a preset.
func DefaultLintConfig(preset Preset) LintConfig {
	cfg := LintConfig{
		Envs:        []string{"browser", "es2022"},
		EcmaVersion: 0,
		SourceType:  SourceTypeModule,
		Extends:     []string{"eslint:recommended"},
		Rules: map[string]RuleSeverity{
			"no-unused-vars": SeverityWarn,
			"no-console":     SeverityOff,
			"eqeqeq":         SeverityError,
		},
	}
	if preset.UsesReact() {
		cfg.Extends = append(cfg.Extends, "plugin:react/recommended")
		cfg.Rules["react/prop-types"] = SeverityOff
	}
	return cfg
}
