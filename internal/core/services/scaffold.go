package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driven"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
	"github.com/webrig-labs/webrig-cli/internal/render"
)

// Ensure ScaffoldService implements the interface.
var _ driving.ScaffoldService = (*ScaffoldService)(nil)

// ScaffoldService creates workspaces and keeps rendered config files
// in step with the manifest.
type ScaffoldService struct {
	workDir       string
	manifestStore driven.ManifestStore
	registry      driven.TemplateRegistry
}

// NewScaffoldService creates a new scaffold service rooted at workDir.
func NewScaffoldService(workDir string, manifestStore driven.ManifestStore) *ScaffoldService {
	return &ScaffoldService{
		workDir:       workDir,
		manifestStore: manifestStore,
	}
}

// SetTemplateRegistry sets the registry used for remote template init.
func (s *ScaffoldService) SetTemplateRegistry(registry driven.TemplateRegistry) {
	s.registry = registry
}

// Init creates a new workspace from an embedded preset or a remote
// template.
func (s *ScaffoldService) Init(ctx context.Context, opts driving.InitOptions) (*domain.Project, error) {
	if err := domain.ValidateProjectName(opts.Name); err != nil {
		return nil, err
	}
	if s.manifestStore.Exists() && !opts.Force {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkspaceExists, s.manifestStore.Path())
	}

	if opts.Template != "" {
		return s.initFromTemplate(ctx, opts)
	}
	return s.initFromPreset(ctx, opts)
}

func (s *ScaffoldService) initFromPreset(ctx context.Context, opts driving.InitOptions) (*domain.Project, error) {
	if !opts.Preset.IsValid() {
		return nil, fmt.Errorf("%w: unknown preset %q", domain.ErrInvalidInput, opts.Preset)
	}

	project := domain.DefaultProject(opts.Name, opts.Preset)

	starter, err := render.StarterFiles(project)
	if err != nil {
		return nil, err
	}
	for _, path := range sortedPaths(starter) {
		if err := s.writeFileIfAbsent(path, starter[path]); err != nil {
			return nil, err
		}
	}

	if err := s.finishInit(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ScaffoldService) initFromTemplate(ctx context.Context, opts driving.InitOptions) (*domain.Project, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("%w: no template registry configured", domain.ErrNotImplemented)
	}
	owner, repo, err := splitTemplateRef(opts.Template)
	if err != nil {
		return nil, err
	}

	if err := s.registry.Download(ctx, owner, repo, s.workDir); err != nil {
		return nil, fmt.Errorf("downloading template %s/%s: %w", owner, repo, err)
	}

	// Templates usually ship their own manifest. Fall back to preset
	// defaults when they do not.
	project, err := s.manifestStore.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrNoManifest):
		preset := opts.Preset
		if !preset.IsValid() {
			preset = domain.PresetVanilla
		}
		project = domain.DefaultProject(opts.Name, preset)
	case err != nil:
		return nil, err
	default:
		project.Name = opts.Name
	}

	if err := s.finishInit(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// finishInit saves the manifest, writes package.json once and renders
// the managed config files.
func (s *ScaffoldService) finishInit(ctx context.Context, project *domain.Project) error {
	if err := s.manifestStore.Save(ctx, project); err != nil {
		return err
	}

	pkg, err := render.PackageJSON(project)
	if err != nil {
		return err
	}
	if err := s.writeFileIfAbsent(render.PackageJSONFile, pkg); err != nil {
		return err
	}

	_, err = s.Sync(ctx)
	return err
}

// Sync re-renders every managed config file, overwriting drifted ones.
func (s *ScaffoldService) Sync(ctx context.Context) (*driving.SyncResult, error) {
	project, err := s.manifestStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	files, err := render.ConfigFiles(project)
	if err != nil {
		return nil, err
	}

	result := &driving.SyncResult{}
	for _, path := range sortedPaths(files) {
		existing, readErr := os.ReadFile(s.abs(path))
		if readErr == nil && bytes.Equal(existing, files[path]) {
			result.Unchanged = append(result.Unchanged, path)
			continue
		}
		if err := s.writeFile(path, files[path]); err != nil {
			return nil, err
		}
		result.Written = append(result.Written, path)
	}
	return result, nil
}

// Diff reports drift without writing anything.
func (s *ScaffoldService) Diff(ctx context.Context) ([]driving.FileDiff, error) {
	project, err := s.manifestStore.Load(ctx)
	if err != nil {
		return nil, err
	}
	files, err := render.ConfigFiles(project)
	if err != nil {
		return nil, err
	}

	diffs := make([]driving.FileDiff, 0, len(files))
	for _, path := range sortedPaths(files) {
		existing, readErr := os.ReadFile(s.abs(path))
		state := driving.DiffCurrent
		switch {
		case readErr != nil:
			state = driving.DiffMissing
		case !bytes.Equal(existing, files[path]):
			state = driving.DiffStale
		}
		diffs = append(diffs, driving.FileDiff{Path: path, State: state})
	}
	return diffs, nil
}

func (s *ScaffoldService) abs(rel string) string {
	return filepath.Join(s.workDir, filepath.FromSlash(rel))
}

func (s *ScaffoldService) writeFile(rel string, data []byte) error {
	abs := s.abs(rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// writeFileIfAbsent never clobbers files the user may have edited.
func (s *ScaffoldService) writeFileIfAbsent(rel string, data []byte) error {
	if _, err := os.Stat(s.abs(rel)); err == nil {
		return nil
	}
	return s.writeFile(rel, data)
}

func splitTemplateRef(ref string) (owner, repo string, err error) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: template must be owner/repo, got %q", domain.ErrInvalidInput, ref)
	}
	return parts[0], parts[1], nil
}

func sortedPaths(files map[string][]byte) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
