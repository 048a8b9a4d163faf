package render

import (
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// Rendered formatter file paths.
const (
	PrettierFile       = ".prettierrc.json"
	PrettierIgnoreFile = ".prettierignore"
)

type prettierConfig struct {
	PrintWidth    int    `json:"printWidth"`
	TabWidth      int    `json:"tabWidth"`
	UseTabs       bool   `json:"useTabs"`
	Semi          bool   `json:"semi"`
	SingleQuote   bool   `json:"singleQuote"`
	TrailingComma string `json:"trailingComma"`
}

// Prettier renders the formatter config from the manifest.
func Prettier(project *domain.Project) ([]byte, error) {
	cfg := &project.Format
	return marshalConfig(prettierConfig{
		PrintWidth:    cfg.PrintWidth,
		TabWidth:      cfg.TabWidth,
		UseTabs:       cfg.UseTabs,
		Semi:          cfg.Semi,
		SingleQuote:   cfg.SingleQuote,
		TrailingComma: cfg.TrailingComma.String(),
	})
}

// PrettierIgnore renders the formatter ignore file, one pattern per
// line in manifest order. The bundle output dir is always part of the
// list so generated bundles are never rewritten.
func PrettierIgnore(project *domain.Project) []byte {
	patterns := append([]string(nil), project.Format.Ignore...)
	if out := project.Bundle.Output.Dir; out != "" && !containsPattern(patterns, out) {
		patterns = append(patterns, out)
	}

	var b strings.Builder
	b.WriteString("# Generated by webrig. Edit webrig.toml and run \"webrig sync\" instead.\n")
	for _, pattern := range patterns {
		b.WriteString(pattern)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func containsPattern(patterns []string, want string) bool {
	for _, pattern := range patterns {
		if pattern == want {
			return true
		}
	}
	return false
}
