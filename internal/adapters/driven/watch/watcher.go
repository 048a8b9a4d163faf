// Package watch reports file changes under a workspace using fsnotify.
// Change bursts are debounced so one editor save produces one batch.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/logger"
)

// DefaultDebounce is how long the watcher waits after the last change
// before emitting a batch.
const DefaultDebounce = 100 * time.Millisecond

// Directories never worth watching.
var skipDirNames = map[string]bool{
	"node_modules": true,
	".webrig":      true,
	".git":         true,
}

// Ensure Watcher implements the interface.
var _ driven.WorkspaceWatcher = (*Watcher)(nil)

// Watcher is the fsnotify-backed implementation of the workspace
// watcher port.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher with the default debounce window.
func NewWatcher() *Watcher {
	return &Watcher{debounce: DefaultDebounce}
}

// SetDebounce overrides the debounce window, mainly for tests.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch begins watching dir recursively. Batches of changed paths
// arrive on the returned channel until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan []string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := addRecursive(fsw, dir); err != nil {
		fsw.Close()
		return nil, err
	}

	batches := make(chan []string)
	go w.run(ctx, fsw, dir, batches)
	return batches, nil
}

// run owns the fsnotify event loop. Changed paths accumulate until the
// debounce timer fires with no further events.
func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, dir string, batches chan<- []string) {
	defer close(batches)
	defer fsw.Close()

	var pending []string
	seen := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := pending
		pending = nil
		seen = make(map[string]bool)
		select {
		case batches <- batch:
		case <-ctx.Done():
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				flush()
				return
			}
			if !relevant(event) {
				continue
			}
			rel := relativeTo(dir, event.Name)
			if isHidden(rel) || underSkippedDir(rel) {
				continue
			}
			// New directories must be watched too.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						logger.Warn("watching new directory %s: %v", rel, err)
					}
				}
			}
			if !seen[rel] {
				seen[rel] = true
				pending = append(pending, rel)
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			flush()

		case err, ok := <-fsw.Errors:
			if !ok {
				flush()
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// relevant filters the operations that mean content changed.
// Chmod-only events are noise on most editors.
func relevant(event fsnotify.Event) bool {
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

// addRecursive registers dir and every non-hidden subdirectory.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != dir && (skipDirNames[name] || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// relativeTo returns path relative to root with forward slashes,
// falling back to the input when it is outside root.
func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// isHidden reports whether any path segment starts with a dot.
func isHidden(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if segment == "." || segment == ".." {
			continue
		}
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// underSkippedDir reports whether the path sits inside a directory the
// watcher never reports, such as node_modules.
func underSkippedDir(rel string) bool {
	for _, segment := range strings.Split(rel, "/") {
		if skipDirNames[segment] {
			return true
		}
	}
	return false
}
