package driven

import "context"

// WorkspaceWatcher reports file changes under a directory tree.
// Change bursts are debounced so one save produces one batch.
type WorkspaceWatcher interface {
	// Watch begins watching dir recursively. Batches of changed paths
	// arrive on the returned channel until ctx is cancelled, after
	// which the channel is closed. Hidden files and directories are
	// not reported.
	Watch(ctx context.Context, dir string) (<-chan []string, error)
}
