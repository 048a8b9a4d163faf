package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPreset_IsValid tests preset validation
func TestPreset_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		preset Preset
		want   bool
	}{
		{"vanilla is valid", PresetVanilla, true},
		{"react is valid", PresetReact, true},
		{"react-ts is valid", PresetReactTS, true},
		{"empty is invalid", Preset(""), false},
		{"unknown is invalid", Preset("svelte"), false},
		{"uppercase is invalid", Preset("React"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.preset.IsValid())
		})
	}
}

// TestPreset_UsesReact tests the react capability flag
func TestPreset_UsesReact(t *testing.T) {
	assert.False(t, PresetVanilla.UsesReact())
	assert.True(t, PresetReact.UsesReact())
	assert.True(t, PresetReactTS.UsesReact())
}

// TestPreset_UsesTypeScript tests the typescript capability flag
func TestPreset_UsesTypeScript(t *testing.T) {
	assert.False(t, PresetVanilla.UsesTypeScript())
	assert.False(t, PresetReact.UsesTypeScript())
	assert.True(t, PresetReactTS.UsesTypeScript())
}

// TestPreset_String tests string conversion
func TestPreset_String(t *testing.T) {
	assert.Equal(t, "vanilla", PresetVanilla.String())
	assert.Equal(t, "react", PresetReact.String())
	assert.Equal(t, "react-ts", PresetReactTS.String())
}

// TestPreset_Description tests human-readable descriptions
func TestPreset_Description(t *testing.T) {
	for _, preset := range AllPresets() {
		assert.NotEmpty(t, preset.Description())
		assert.NotEqual(t, unknownDescription, preset.Description())
	}
	assert.Equal(t, unknownDescription, Preset("bogus").Description())
}

// TestAllPresets tests the preset list
func TestAllPresets(t *testing.T) {
	presets := AllPresets()

	assert.Len(t, presets, 3)
	assert.Equal(t, PresetVanilla, presets[0])
	for _, preset := range presets {
		assert.True(t, preset.IsValid())
	}
}
