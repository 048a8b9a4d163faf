package domain

const unknownDescription = "Unknown"

// Preset identifies a starter flavour for a scaffolded workspace.
type Preset string

// Available presets.
const (
	// PresetVanilla is plain JavaScript with bundling and styling only.
	PresetVanilla Preset = "vanilla"

	// PresetReact adds the UI library and JSX transpilation.
	PresetReact Preset = "react"

	// PresetReactTS is the React preset with type-checked sources.
	PresetReactTS Preset = "react-ts"
)

// IsValid returns true if the preset is recognised.
func (p Preset) IsValid() bool {
	switch p {
	case PresetVanilla, PresetReact, PresetReactTS:
		return true
	default:
		return false
	}
}

// UsesReact returns true if this preset renders through the UI library.
func (p Preset) UsesReact() bool {
	return p == PresetReact || p == PresetReactTS
}

// UsesTypeScript returns true if this preset carries typed sources.
func (p Preset) UsesTypeScript() bool {
	return p == PresetReactTS
}

// String returns the string representation.
func (p Preset) String() string {
	return string(p)
}

// Description returns a human-readable description of the preset.
func (p Preset) Description() string {
	switch p {
	case PresetVanilla:
		return "Vanilla (plain JavaScript + CSS)"
	case PresetReact:
		return "React (JSX components)"
	case PresetReactTS:
		return "React + TypeScript (typed TSX components)"
	default:
		return unknownDescription
	}
}

// AllPresets returns all available presets in display order.
func AllPresets() []Preset {
	return []Preset{
		PresetVanilla,
		PresetReact,
		PresetReactTS,
	}
}
