package render

import (
	"encoding/json"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// BabelFile is the rendered compiler config path.
const BabelFile = "babel.config.json"

// Babel renders the compiler config from the manifest. Presets are
// listed env first, then react, then typescript; the compiler applies
// them in reverse, which is the order the presets expect.
func Babel(project *domain.Project) ([]byte, error) {
	cfg := &project.Transpile

	presets := []any{
		[]any{"@babel/preset-env", map[string]any{"targets": cfg.Targets}},
	}
	if cfg.React {
		presets = append(presets, []any{
			"@babel/preset-react",
			map[string]any{"runtime": cfg.ReactRuntime.String()},
		})
	}
	if cfg.TypeScript {
		presets = append(presets, "@babel/preset-typescript")
	}

	return marshalConfig(map[string]any{"presets": presets})
}

// marshalConfig marshals a JSON config with two-space indentation and
// a trailing newline, the way the tools themselves write these files.
func marshalConfig(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
