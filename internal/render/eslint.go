package render

import (
	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ESLintFile is the rendered linter config path.
const ESLintFile = ".eslintrc.json"

type eslintParserOptions struct {
	// EcmaVersion is "latest" or a numeric edition, hence any.
	EcmaVersion  any            `json:"ecmaVersion"`
	SourceType   string         `json:"sourceType"`
	EcmaFeatures map[string]any `json:"ecmaFeatures,omitempty"`
}

type eslintConfig struct {
	Env           map[string]bool     `json:"env"`
	ParserOptions eslintParserOptions `json:"parserOptions"`
	Extends       []string            `json:"extends"`
	Rules         map[string]string   `json:"rules"`
	Settings      map[string]any      `json:"settings,omitempty"`
}

// ESLint renders the linter config from the manifest. Env and rules
// are map-backed and marshal in sorted key order.
func ESLint(project *domain.Project) ([]byte, error) {
	cfg := &project.Lint

	env := make(map[string]bool, len(cfg.Envs))
	for _, name := range cfg.Envs {
		env[name] = true
	}

	rules := make(map[string]string, len(cfg.Rules))
	for _, name := range cfg.RuleNames() {
		rules[name] = cfg.Rules[name].String()
	}

	out := eslintConfig{
		Env: env,
		ParserOptions: eslintParserOptions{
			EcmaVersion: ecmaVersionValue(cfg),
			SourceType:  cfg.SourceType.String(),
		},
		Extends: cfg.Extends,
		Rules:   rules,
	}

	if project.Transpile.React {
		out.ParserOptions.EcmaFeatures = map[string]any{"jsx": true}
		out.Settings = map[string]any{
			"react": map[string]any{"version": "detect"},
		}
	}

	return marshalConfig(out)
}

// ecmaVersionValue keeps numeric editions as JSON numbers while zero
// maps to the string "latest".
func ecmaVersionValue(cfg *domain.LintConfig) any {
	if cfg.EcmaVersion == 0 {
		return "latest"
	}
	return cfg.EcmaVersion
}
