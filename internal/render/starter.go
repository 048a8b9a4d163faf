package render

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

//go:embed templates
var starterFS embed.FS

// Embedded names that map onto dotfiles in the workspace. The embed
// directive skips dotfiles, so they are stored without the dot.
var starterRenames = map[string]string{
	"gitignore": ".gitignore",
}

var namePlaceholder = []byte("{{name}}")

// StarterFiles returns the starter source tree for the manifest's
// preset, keyed by workspace-relative path. The {{name}} placeholder
// is replaced with the project name.
func StarterFiles(project *domain.Project) (map[string][]byte, error) {
	files := make(map[string][]byte)
	roots := []string{
		"templates/common",
		"templates/" + project.Preset.String(),
	}

	for _, root := range roots {
		err := fs.WalkDir(starterFS, root, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				return nil
			}
			data, err := starterFS.ReadFile(p)
			if err != nil {
				return err
			}
			rel := strings.TrimPrefix(p, root+"/")
			if renamed, ok := starterRenames[path.Base(rel)]; ok {
				rel = path.Join(path.Dir(rel), renamed)
			}
			files[rel] = bytes.ReplaceAll(data, namePlaceholder, []byte(project.Name))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reading starter %s: %w", root, err)
		}
	}

	return files, nil
}
