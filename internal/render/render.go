package render

import (
	"fmt"
	"sort"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// ConfigFiles renders every managed tool config file from the
// manifest, keyed by workspace-relative path. package.json is not
// included; it is rendered once at init and owned by the user after.
func ConfigFiles(project *domain.Project) (map[string][]byte, error) {
	babel, err := Babel(project)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", BabelFile, err)
	}
	eslint, err := ESLint(project)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ESLintFile, err)
	}
	prettier, err := Prettier(project)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", PrettierFile, err)
	}

	return map[string][]byte{
		WebpackFile:        Webpack(project),
		BabelFile:          babel,
		ESLintFile:         eslint,
		PrettierFile:       prettier,
		PrettierIgnoreFile: PrettierIgnore(project),
	}, nil
}

// ConfigFile renders one managed config file by path.
// Returns domain.ErrNotFound for paths that are not managed.
func ConfigFile(project *domain.Project, path string) ([]byte, error) {
	switch path {
	case WebpackFile:
		return Webpack(project), nil
	case BabelFile:
		return Babel(project)
	case ESLintFile:
		return ESLint(project)
	case PrettierFile:
		return Prettier(project)
	case PrettierIgnoreFile:
		return PrettierIgnore(project), nil
	case PackageJSONFile:
		return PackageJSON(project)
	default:
		return nil, fmt.Errorf("%w: no managed config at %q", domain.ErrNotFound, path)
	}
}

// ConfigPaths returns the managed config file paths in sorted order.
func ConfigPaths() []string {
	paths := []string{
		WebpackFile,
		BabelFile,
		ESLintFile,
		PrettierFile,
		PrettierIgnoreFile,
	}
	sort.Strings(paths)
	return paths
}
