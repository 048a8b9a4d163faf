package github

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// maxFileSize caps a single extracted file at 64 MiB. Starter
// templates are source trees, not asset dumps.
const maxFileSize = 64 << 20

// extractTarball extracts a gzipped tarball into destDir, stripping
// the first path component (GitHub prefixes entries with
// "owner-repo-sha/"). Entries that would escape destDir are rejected.
func extractTarball(archive io.Reader, destDir string) error {
	gz, err := gzip.NewReader(archive)
	if err != nil {
		return fmt.Errorf("reading gzip stream: %w", err)
	}
	defer gz.Close()

	reader := tar.NewReader(gz)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading tarball: %w", err)
		}

		rel, ok := stripArchivePrefix(header.Name)
		if !ok {
			continue
		}
		target, err := securePath(destDir, rel)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", rel, err)
			}
		case tar.TypeReg:
			if err := writeEntry(reader, target, rel, header); err != nil {
				return err
			}
		default:
			// Symlinks and specials are skipped; a template has no
			// business shipping them.
		}
	}
}

// stripArchivePrefix removes the leading "owner-repo-sha/" component.
// The prefix directory itself produces no entry.
func stripArchivePrefix(name string) (string, bool) {
	name = strings.TrimPrefix(name, "./")
	idx := strings.IndexByte(name, '/')
	if idx < 0 {
		return "", false
	}
	rel := name[idx+1:]
	if rel == "" {
		return "", false
	}
	return rel, true
}

// securePath joins rel onto destDir and rejects escapes.
func securePath(destDir, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: absolute entry %q", domain.ErrUnsafePath, rel)
	}
	target := filepath.Join(destDir, filepath.FromSlash(rel))
	cleanDest := filepath.Clean(destDir) + string(os.PathSeparator)
	if !strings.HasPrefix(target, cleanDest) {
		return "", fmt.Errorf("%w: entry %q escapes the target directory", domain.ErrUnsafePath, rel)
	}
	return target, nil
}

func writeEntry(reader *tar.Reader, target, rel string, header *tar.Header) error {
	if header.Size > maxFileSize {
		return fmt.Errorf("%w: entry %q exceeds size limit", domain.ErrInvalidInput, rel)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating parent of %s: %w", rel, err)
	}

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode)&0o777)
	if err != nil {
		return fmt.Errorf("creating %s: %w", rel, err)
	}
	defer file.Close()

	if _, err := io.CopyN(file, reader, header.Size); err != nil && err != io.EOF {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}
