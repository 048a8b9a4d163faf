package domain

import "fmt"

// TrailingComma selects where the formatter emits trailing commas.
type TrailingComma string

// Available trailing comma styles.
const (
	// TrailingCommaNone never emits trailing commas.
	TrailingCommaNone TrailingComma = "none"

	// TrailingCommaES5 emits them where ES5 allows, arrays and objects.
	TrailingCommaES5 TrailingComma = "es5"

	// TrailingCommaAll also emits them in function argument lists.
	TrailingCommaAll TrailingComma = "all"
)

// IsValid returns true if the style is recognised.
func (t TrailingComma) IsValid() bool {
	switch t {
	case TrailingCommaNone, TrailingCommaES5, TrailingCommaAll:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t TrailingComma) String() string {
	return string(t)
}

// FormatConfig is the manifest section for the code formatter.
type FormatConfig struct {
	// PrintWidth is the preferred line length.
	PrintWidth int `toml:"print_width"`

	// TabWidth is the number of spaces per indentation level.
	TabWidth int `toml:"tab_width"`

	// UseTabs indents with tabs instead of spaces.
	UseTabs bool `toml:"use_tabs"`

	// Semi terminates statements with semicolons.
	Semi bool `toml:"semi"`

	// SingleQuote prefers single quotes over double quotes.
	SingleQuote bool `toml:"single_quote"`

	// TrailingComma selects the trailing comma style.
	TrailingComma TrailingComma `toml:"trailing_comma"`

	// Ignore lists path patterns the formatter skips, one per line in
	// the rendered ignore file.
	Ignore []string `toml:"ignore"`
}

// Validate checks the formatter section for correctness.
func (c *FormatConfig) Validate() error {
	if c.PrintWidth < 1 {
		return fmt.Errorf("%w: format print width must be positive", ErrInvalidManifest)
	}
	if c.TabWidth < 1 {
		return fmt.Errorf("%w: format tab width must be positive", ErrInvalidManifest)
	}
	if !c.TrailingComma.IsValid() {
		return fmt.Errorf("%w: unknown trailing comma style %q", ErrInvalidManifest, c.TrailingComma)
	}
	return nil
}

// DefaultFormatConfig returns the formatter defaults.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		PrintWidth:    80,
		TabWidth:      2,
		UseTabs:       false,
		Semi:          true,
		SingleQuote:   true,
		TrailingComma: TrailingCommaES5,
		Ignore:        []string{"dist", "build", "coverage", "node_modules"},
	}
}
