package render

import (
	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// PackageJSONFile is the npm package manifest path.
const PackageJSONFile = "package.json"

// Pinned toolchain versions written into new workspaces. Kept as
// caret ranges so npm resolves compatible patch releases.
var (
	reactRuntimeDeps = map[string]string{
		"react":     "^18.3.1",
		"react-dom": "^18.3.1",
	}

	baseDevDeps = map[string]string{
		"webpack":             "^5.94.0",
		"webpack-cli":         "^5.1.4",
		"@babel/core":         "^7.25.2",
		"@babel/cli":          "^7.25.6",
		"@babel/preset-env":   "^7.25.4",
		"babel-loader":        "^9.2.1",
		"style-loader":        "^4.0.0",
		"css-loader":          "^7.1.2",
		"html-webpack-plugin": "^5.6.0",
		"eslint":              "^8.57.0",
		"prettier":            "^3.3.3",
	}

	reactDevDeps = map[string]string{
		"@babel/preset-react": "^7.24.7",
		"eslint-plugin-react": "^7.35.0",
	}

	typescriptDevDeps = map[string]string{
		"@babel/preset-typescript": "^7.24.7",
		"typescript":               "^5.5.4",
	}
)

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// PackageJSON renders the npm package manifest for a new workspace.
// It is written once at init and never overwritten by sync, since the
// user owns it from then on.
func PackageJSON(project *domain.Project) ([]byte, error) {
	out := packageJSON{
		Name:    project.Name,
		Version: project.Version,
		Private: true,
		Scripts: map[string]string{
			"build":  "webpack",
			"lint":   "eslint src",
			"format": "prettier --write .",
			"serve":  "webrig serve",
		},
		DevDependencies: devDependencies(project.Preset),
	}

	if project.Preset.UsesReact() {
		out.Dependencies = copyVersions(reactRuntimeDeps)
	}

	return marshalConfig(out)
}

func devDependencies(preset domain.Preset) map[string]string {
	deps := copyVersions(baseDevDeps)
	if preset.UsesReact() {
		for name, version := range reactDevDeps {
			deps[name] = version
		}
	}
	if preset.UsesTypeScript() {
		for name, version := range typescriptDevDeps {
			deps[name] = version
		}
	}
	return deps
}

func copyVersions(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for name, version := range src {
		dst[name] = version
	}
	return dst
}
