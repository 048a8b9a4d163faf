package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// fakeRunner records invocations and plays back canned results.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	tools    []domain.Tool
	result   driven.ToolResult
	runErr   error
	versions map[string]string
	ran      chan struct{}
}

func (f *fakeRunner) Run(_ context.Context, tool domain.Tool, args []string) (*driven.ToolResult, error) {
	f.mu.Lock()
	f.tools = append(f.tools, tool)
	f.calls = append(f.calls, args)
	f.mu.Unlock()
	if f.ran != nil {
		f.ran <- struct{}{}
	}
	if f.runErr != nil {
		return nil, f.runErr
	}
	result := f.result
	return &result, nil
}

func (f *fakeRunner) Version(_ context.Context, binary string) (string, error) {
	if f.versions == nil {
		return "", domain.ErrToolNotFound
	}
	version, ok := f.versions[binary]
	if !ok {
		return "", domain.ErrToolNotFound
	}
	return version, nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeRunStore captures recorded runs.
type fakeRunStore struct {
	mu        sync.Mutex
	runs      []domain.RunRecord
	prunedTo  int
	pruneHits int
}

func (f *fakeRunStore) Record(_ context.Context, record *domain.RunRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, *record)
	return nil
}

func (f *fakeRunStore) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	runs := make([]domain.RunRecord, len(f.runs))
	copy(runs, f.runs)
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (f *fakeRunStore) ListByTool(ctx context.Context, tool domain.Tool, limit int) ([]domain.RunRecord, error) {
	all, _ := f.List(ctx, 0)
	var filtered []domain.RunRecord
	for _, run := range all {
		if run.Tool == tool {
			filtered = append(filtered, run)
		}
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (f *fakeRunStore) Prune(_ context.Context, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prunedTo = keep
	f.pruneHits++
	if keep > 0 && len(f.runs) > keep {
		f.runs = f.runs[len(f.runs)-keep:]
	}
	return nil
}

func (f *fakeRunStore) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = nil
	return nil
}

// fakeWatcher hands out a caller-controlled batch channel.
type fakeWatcher struct {
	batches chan []string
}

func (f *fakeWatcher) Watch(ctx context.Context, _ string) (<-chan []string, error) {
	out := make(chan []string)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case batch, ok := <-f.batches:
				if !ok {
					return
				}
				out <- batch
			}
		}
	}()
	return out, nil
}

func newTestToolchain(t *testing.T) (*ToolchainService, *fakeManifestStore, *fakeRunner, *fakeRunStore) {
	t.Helper()
	store := &fakeManifestStore{project: domain.DefaultProject("my-app", domain.PresetVanilla)}
	runner := &fakeRunner{}
	runStore := &fakeRunStore{}
	svc := NewToolchainService(t.TempDir(), store, runner)
	svc.SetRunStore(runStore)
	return svc, store, runner, runStore
}

// TestToolchainService_Build tests a bundler invocation
func TestToolchainService_Build(t *testing.T) {
	svc, _, runner, runStore := newTestToolchain(t)

	record, err := svc.Build(context.Background(), driving.BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.ToolBundler, record.Tool)
	assert.Equal(t, domain.TriggerManual, record.Trigger)
	assert.True(t, record.Success)
	assert.NotEmpty(t, record.ID)
	assert.Empty(t, runner.calls[0])

	require.Len(t, runStore.runs, 1)
	assert.Equal(t, record.ID, runStore.runs[0].ID)
}

// TestToolchainService_PrunesHistory tests retention after each record
func TestToolchainService_PrunesHistory(t *testing.T) {
	svc, _, _, runStore := newTestToolchain(t)

	_, err := svc.Build(context.Background(), driving.BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, runStore.pruneHits)
	assert.Equal(t, HistoryRetention, runStore.prunedTo)
}

// TestToolchainService_Build_Production tests the production override
func TestToolchainService_Build_Production(t *testing.T) {
	svc, _, runner, _ := newTestToolchain(t)

	_, err := svc.Build(context.Background(), driving.BuildOptions{Production: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"--mode", "production"}, runner.calls[0])
}

// TestToolchainService_Lint tests linter argument assembly
func TestToolchainService_Lint(t *testing.T) {
	svc, _, runner, _ := newTestToolchain(t)
	ctx := context.Background()

	_, err := svc.Lint(ctx, driving.LintOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"src"}, runner.calls[0])

	_, err = svc.Lint(ctx, driving.LintOptions{Fix: true, Paths: []string{"src/app.js"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"--fix", "src/app.js"}, runner.calls[1])
}

// TestToolchainService_Format tests formatter argument assembly
func TestToolchainService_Format(t *testing.T) {
	svc, _, runner, _ := newTestToolchain(t)
	ctx := context.Background()

	_, err := svc.Format(ctx, driving.FormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"--write", "."}, runner.calls[0])

	_, err = svc.Format(ctx, driving.FormatOptions{CheckOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"--check", "."}, runner.calls[1])
}

// TestToolchainService_FailedRun tests that tool failures become records
func TestToolchainService_FailedRun(t *testing.T) {
	svc, _, runner, runStore := newTestToolchain(t)
	runner.result = driven.ToolResult{
		ExitCode: 1,
		Stderr:   "\n  3 problems (1 error, 2 warnings)\n",
	}

	record, err := svc.Lint(context.Background(), driving.LintOptions{})
	require.NoError(t, err)

	assert.False(t, record.Success)
	assert.Equal(t, 1, record.ExitCode)
	assert.Equal(t, "3 problems (1 error, 2 warnings)", record.Detail)
	require.Len(t, runStore.runs, 1)
	assert.False(t, runStore.runs[0].Success)
}

// TestToolchainService_NoManifest tests the missing-manifest guard
func TestToolchainService_NoManifest(t *testing.T) {
	store := &fakeManifestStore{}
	svc := NewToolchainService(t.TempDir(), store, &fakeRunner{})

	_, err := svc.Build(context.Background(), driving.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrNoManifest)
}

// TestToolchainService_Watch tests watch-mode re-runs
func TestToolchainService_Watch(t *testing.T) {
	svc, _, runner, runStore := newTestToolchain(t)
	runner.ran = make(chan struct{}, 10)
	watcher := &fakeWatcher{batches: make(chan []string)}
	svc.SetWatcher(watcher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, domain.ToolBundler)
	}()

	// Initial run fires before any change.
	waitForRun(t, runner.ran)

	watcher.batches <- []string{"src/app.js"}
	waitForRun(t, runner.ran)

	// Changes under output dirs alone do not trigger a run.
	watcher.batches <- []string{"dist/main.js", "node_modules/react/index.js"}
	watcher.batches <- []string{"src/styles.css"}
	waitForRun(t, runner.ran)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 3, runner.callCount())
	for _, run := range runStore.runs {
		assert.Equal(t, domain.TriggerWatch, run.Trigger)
	}
}

// TestToolchainService_Watch_SingleInstance tests the in-progress guard
func TestToolchainService_Watch_SingleInstance(t *testing.T) {
	svc, _, runner, _ := newTestToolchain(t)
	runner.ran = make(chan struct{}, 10)
	watcher := &fakeWatcher{batches: make(chan []string)}
	svc.SetWatcher(watcher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Watch(ctx, domain.ToolBundler)
	}()
	waitForRun(t, runner.ran)

	err := svc.Watch(context.Background(), domain.ToolBundler)
	assert.ErrorIs(t, err, domain.ErrRunInProgress)

	cancel()
	require.NoError(t, <-done)
}

// TestToolchainService_Watch_NoWatcher tests the nil guard
func TestToolchainService_Watch_NoWatcher(t *testing.T) {
	svc, _, _, _ := newTestToolchain(t)

	err := svc.Watch(context.Background(), domain.ToolBundler)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

// TestRunDetail tests outcome note extraction
func TestRunDetail(t *testing.T) {
	ok := &driven.ToolResult{ExitCode: 0, Stderr: "noise"}
	assert.Empty(t, runDetail(ok))

	failed := &driven.ToolResult{ExitCode: 2, Stderr: "\nSyntaxError: unexpected token\nmore context"}
	assert.Equal(t, "SyntaxError: unexpected token", runDetail(failed))

	stdoutOnly := &driven.ToolResult{ExitCode: 1, Stdout: "1 file would be reformatted"}
	assert.Equal(t, "1 file would be reformatted", runDetail(stdoutOnly))
}

// TestUnderAny tests output-directory matching
func TestUnderAny(t *testing.T) {
	dirs := []string{"dist", "build", "node_modules"}

	assert.True(t, underAny("dist/main.js", dirs))
	assert.True(t, underAny("node_modules", dirs))
	assert.False(t, underAny("src/app.js", dirs))
	assert.False(t, underAny("distribution/readme", dirs))
}

func waitForRun(t *testing.T, ran <-chan struct{}) {
	t.Helper()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for tool run")
	}
}
