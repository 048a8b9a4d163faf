package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// TestPrettier tests formatter config rendering
func TestPrettier(t *testing.T) {
	project := domain.DefaultProject("my-app", domain.PresetVanilla)

	data, err := Prettier(project)
	require.NoError(t, err)

	want := `{
  "printWidth": 80,
  "tabWidth": 2,
  "useTabs": false,
  "semi": true,
  "singleQuote": true,
  "trailingComma": "es5"
}
`
	assert.Equal(t, want, string(data))
}

// TestPrettierIgnore tests ignore file rendering
func TestPrettierIgnore(t *testing.T) {
	project := domain.DefaultProject("my-app", domain.PresetVanilla)
	project.Format.Ignore = []string{"dist", "coverage"}

	out := string(PrettierIgnore(project))

	assert.Contains(t, out, "# Generated by webrig.")
	assert.Contains(t, out, "dist\n")
	assert.Contains(t, out, "coverage\n")
}

// TestPrettierIgnore_IncludesBundleOutput tests that the bundle output
// dir is always ignored, without duplicating an explicit entry
func TestPrettierIgnore_IncludesBundleOutput(t *testing.T) {
	project := domain.DefaultProject("my-app", domain.PresetVanilla)
	project.Bundle.Output.Dir = "custom-out"
	project.Format.Ignore = []string{"coverage"}

	out := string(PrettierIgnore(project))

	assert.Contains(t, out, "coverage\n")
	assert.Contains(t, out, "custom-out\n")

	project.Format.Ignore = []string{"custom-out", "coverage"}
	out = string(PrettierIgnore(project))
	assert.Equal(t, 1, strings.Count(out, "custom-out\n"))
}
