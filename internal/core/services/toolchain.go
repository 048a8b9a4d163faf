package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// Ensure ToolchainService implements the interface.
var _ driving.ToolchainService = (*ToolchainService)(nil)

const maxDetailLength = 200

// HistoryRetention is the number of run records kept overall. Every
// recorder prunes after writing so the store never grows unbounded.
const HistoryRetention = 200

// ToolchainService drives the external front-end tools and records
// every invocation in run history.
type ToolchainService struct {
	workDir       string
	manifestStore driven.ManifestStore
	runner        driven.ToolRunner
	runStore      driven.RunStore
	watcher       driven.WorkspaceWatcher

	mu       sync.Mutex
	watching bool
}

// NewToolchainService creates a new toolchain service rooted at workDir.
func NewToolchainService(workDir string, manifestStore driven.ManifestStore, runner driven.ToolRunner) *ToolchainService {
	return &ToolchainService{
		workDir:       workDir,
		manifestStore: manifestStore,
		runner:        runner,
	}
}

// SetRunStore sets the store runs are recorded to.
func (s *ToolchainService) SetRunStore(store driven.RunStore) {
	s.runStore = store
}

// SetWatcher sets the watcher used for watch mode.
func (s *ToolchainService) SetWatcher(watcher driven.WorkspaceWatcher) {
	s.watcher = watcher
}

// Build bundles the workspace.
func (s *ToolchainService) Build(ctx context.Context, opts driving.BuildOptions) (*domain.RunRecord, error) {
	if _, err := s.manifestStore.Load(ctx); err != nil {
		return nil, err
	}
	var args []string
	if opts.Production {
		args = []string{"--mode", "production"}
	}
	return s.run(ctx, domain.ToolBundler, args, domain.TriggerManual)
}

// Lint analyses the workspace sources.
func (s *ToolchainService) Lint(ctx context.Context, opts driving.LintOptions) (*domain.RunRecord, error) {
	if _, err := s.manifestStore.Load(ctx); err != nil {
		return nil, err
	}
	var args []string
	if opts.Fix {
		args = append(args, "--fix")
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"src"}
	}
	args = append(args, paths...)
	return s.run(ctx, domain.ToolLinter, args, domain.TriggerManual)
}

// Format rewrites sources with the formatter.
func (s *ToolchainService) Format(ctx context.Context, opts driving.FormatOptions) (*domain.RunRecord, error) {
	if _, err := s.manifestStore.Load(ctx); err != nil {
		return nil, err
	}
	args := []string{"--write"}
	if opts.CheckOnly {
		args = []string{"--check"}
	}
	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	args = append(args, paths...)
	return s.run(ctx, domain.ToolFormatter, args, domain.TriggerManual)
}

// Watch re-runs the given tool whenever workspace sources change.
// It blocks until ctx is cancelled.
func (s *ToolchainService) Watch(ctx context.Context, tool domain.Tool) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: no watcher configured", domain.ErrNotImplemented)
	}
	if !tool.IsValid() {
		return fmt.Errorf("%w: unknown tool %q", domain.ErrInvalidInput, tool)
	}

	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return domain.ErrRunInProgress
	}
	s.watching = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.watching = false
		s.mu.Unlock()
	}()

	project, err := s.manifestStore.Load(ctx)
	if err != nil {
		return err
	}
	skipDirs := []string{
		project.Bundle.Output.Dir,
		project.Transpile.OutputDir,
		"node_modules",
	}

	batches, err := s.watcher.Watch(ctx, s.workDir)
	if err != nil {
		return err
	}

	// Run once up front so watch mode produces output immediately.
	if _, err := s.run(ctx, tool, s.watchArgs(tool, project), domain.TriggerWatch); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-batches:
			if !ok {
				return nil
			}
			if !anyRelevant(batch, skipDirs) {
				continue
			}
			if _, err := s.run(ctx, tool, s.watchArgs(tool, project), domain.TriggerWatch); err != nil {
				return err
			}
		}
	}
}

// watchArgs are the default arguments for unattended re-runs.
func (s *ToolchainService) watchArgs(tool domain.Tool, project *domain.Project) []string {
	switch tool {
	case domain.ToolLinter:
		return []string{"src"}
	case domain.ToolFormatter:
		return []string{"--write", "."}
	case domain.ToolTranspiler:
		return []string{"src", "--out-dir", project.Transpile.OutputDir}
	default:
		return nil
	}
}

func (s *ToolchainService) run(ctx context.Context, tool domain.Tool, args []string, trigger domain.RunTrigger) (*domain.RunRecord, error) {
	started := time.Now().UTC()
	result, err := s.runner.Run(ctx, tool, args)
	if err != nil {
		return nil, err
	}

	record := &domain.RunRecord{
		ID:        uuid.NewString(),
		Tool:      tool,
		Argv:      args,
		Trigger:   trigger,
		StartedAt: started,
		EndedAt:   time.Now().UTC(),
		ExitCode:  result.ExitCode,
		Success:   result.Success(),
		Detail:    runDetail(result),
	}

	if s.runStore != nil {
		//nolint:errcheck // Intentionally ignore errors; history must not fail the run
		_ = s.runStore.Record(ctx, record)
		_ = s.runStore.Prune(ctx, HistoryRetention)
	}
	return record, nil
}

// runDetail extracts a short outcome note from a failed run.
func runDetail(result *driven.ToolResult) string {
	if result.Success() {
		return ""
	}
	for _, output := range []string{result.Stderr, result.Stdout} {
		for _, line := range strings.Split(output, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if len(line) > maxDetailLength {
				line = line[:maxDetailLength]
			}
			return line
		}
	}
	return ""
}

// anyRelevant reports whether a change batch touches anything outside
// the skipped output directories.
func anyRelevant(batch []string, skipDirs []string) bool {
	for _, path := range batch {
		if !underAny(path, skipDirs) {
			return true
		}
	}
	return false
}

func underAny(path string, dirs []string) bool {
	normalised := strings.ReplaceAll(path, "\\", "/")
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if normalised == dir || strings.HasPrefix(normalised, dir+"/") {
			return true
		}
	}
	return false
}
