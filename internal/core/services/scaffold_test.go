package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
	"github.com/webrig-labs/webrig-cli/internal/core/ports/driving"
)

// fakeManifestStore is an in-memory manifest store for service tests.
type fakeManifestStore struct {
	mu      sync.Mutex
	project *domain.Project
	saveErr error
}

func (f *fakeManifestStore) Load(_ context.Context) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.project == nil {
		return nil, domain.ErrNoManifest
	}
	copied := *f.project
	return &copied, nil
}

func (f *fakeManifestStore) Save(_ context.Context, project *domain.Project) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if err := project.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *project
	f.project = &copied
	return nil
}

func (f *fakeManifestStore) Exists() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.project != nil
}

func (f *fakeManifestStore) Path() string { return "webrig.toml" }

// fakeRegistry records template downloads and plants files on disk.
type fakeRegistry struct {
	listed    []domain.TemplateInfo
	listErr   error
	lastOwner string
	lastRepo  string
	plant     map[string][]byte
}

func (f *fakeRegistry) ListTemplates(_ context.Context, owner string) ([]domain.TemplateInfo, error) {
	f.lastOwner = owner
	return f.listed, f.listErr
}

func (f *fakeRegistry) Download(_ context.Context, owner, repo, destDir string) error {
	f.lastOwner = owner
	f.lastRepo = repo
	for rel, data := range f.plant {
		abs := filepath.Join(destDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(abs, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func newTestScaffold(t *testing.T) (*ScaffoldService, *fakeManifestStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := &fakeManifestStore{}
	return NewScaffoldService(dir, store), store, dir
}

// TestScaffoldService_Init_CreatesWorkspace tests preset initialisation
func TestScaffoldService_Init_CreatesWorkspace(t *testing.T) {
	svc, store, dir := newTestScaffold(t)

	project, err := svc.Init(context.Background(), driving.InitOptions{
		Name:   "my-app",
		Preset: domain.PresetVanilla,
	})
	require.NoError(t, err)
	require.NotNil(t, project)

	assert.True(t, store.Exists())
	for _, rel := range []string{
		"src/app.js",
		"src/components/like-button.js",
		"src/styles.css",
		"public/index.html",
		".gitignore",
		"package.json",
		"webpack.config.js",
		"babel.config.json",
		".eslintrc.json",
		".prettierrc.json",
		".prettierignore",
	} {
		_, statErr := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		assert.NoError(t, statErr, "expected %s", rel)
	}
}

// TestScaffoldService_Init_ExistingWorkspace tests the force guard
func TestScaffoldService_Init_ExistingWorkspace(t *testing.T) {
	svc, store, _ := newTestScaffold(t)
	store.project = domain.DefaultProject("existing", domain.PresetVanilla)

	_, err := svc.Init(context.Background(), driving.InitOptions{
		Name:   "my-app",
		Preset: domain.PresetVanilla,
	})
	assert.ErrorIs(t, err, domain.ErrWorkspaceExists)

	_, err = svc.Init(context.Background(), driving.InitOptions{
		Name:   "my-app",
		Preset: domain.PresetVanilla,
		Force:  true,
	})
	assert.NoError(t, err)
}

// TestScaffoldService_Init_InvalidInput tests name and preset validation
func TestScaffoldService_Init_InvalidInput(t *testing.T) {
	svc, _, _ := newTestScaffold(t)

	_, err := svc.Init(context.Background(), driving.InitOptions{
		Name:   "Bad Name",
		Preset: domain.PresetVanilla,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)

	_, err = svc.Init(context.Background(), driving.InitOptions{
		Name:   "my-app",
		Preset: "angular",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestScaffoldService_Init_KeepsExistingSources tests that force init
// does not clobber user sources
func TestScaffoldService_Init_KeepsExistingSources(t *testing.T) {
	svc, _, dir := newTestScaffold(t)
	ctx := context.Background()

	_, err := svc.Init(ctx, driving.InitOptions{Name: "my-app", Preset: domain.PresetVanilla})
	require.NoError(t, err)

	custom := []byte("console.log('mine');\n")
	appJS := filepath.Join(dir, "src", "app.js")
	require.NoError(t, os.WriteFile(appJS, custom, 0o644))

	_, err = svc.Init(ctx, driving.InitOptions{Name: "my-app", Preset: domain.PresetVanilla, Force: true})
	require.NoError(t, err)

	data, err := os.ReadFile(appJS)
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

// TestScaffoldService_Init_Template tests remote template initialisation
func TestScaffoldService_Init_Template(t *testing.T) {
	svc, store, dir := newTestScaffold(t)
	registry := &fakeRegistry{plant: map[string][]byte{
		"src/main.js": []byte("export {};\n"),
	}}
	svc.SetTemplateRegistry(registry)

	project, err := svc.Init(context.Background(), driving.InitOptions{
		Name:     "my-app",
		Template: "acme/starter",
	})
	require.NoError(t, err)

	assert.Equal(t, "acme", registry.lastOwner)
	assert.Equal(t, "starter", registry.lastRepo)
	assert.Equal(t, "my-app", project.Name)
	assert.True(t, store.Exists())

	_, err = os.Stat(filepath.Join(dir, "src", "main.js"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "webpack.config.js"))
	assert.NoError(t, err)
}

// TestScaffoldService_Init_TemplateWithoutRegistry tests the nil guard
func TestScaffoldService_Init_TemplateWithoutRegistry(t *testing.T) {
	svc, _, _ := newTestScaffold(t)

	_, err := svc.Init(context.Background(), driving.InitOptions{
		Name:     "my-app",
		Template: "acme/starter",
	})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

// TestScaffoldService_Sync tests drift rewriting
func TestScaffoldService_Sync(t *testing.T) {
	svc, _, dir := newTestScaffold(t)
	ctx := context.Background()

	_, err := svc.Init(ctx, driving.InitOptions{Name: "my-app", Preset: domain.PresetVanilla})
	require.NoError(t, err)

	result, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Written)
	assert.Len(t, result.Unchanged, 5)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "webpack.config.js"), []byte("// tampered\n"), 0o644))

	result, err = svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"webpack.config.js"}, result.Written)
	assert.Len(t, result.Unchanged, 4)
}

// TestScaffoldService_Sync_NoManifest tests the missing-manifest error
func TestScaffoldService_Sync_NoManifest(t *testing.T) {
	svc, _, _ := newTestScaffold(t)

	_, err := svc.Sync(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoManifest)
}

// TestScaffoldService_Diff tests drift reporting
func TestScaffoldService_Diff(t *testing.T) {
	svc, _, dir := newTestScaffold(t)
	ctx := context.Background()

	_, err := svc.Init(ctx, driving.InitOptions{Name: "my-app", Preset: domain.PresetVanilla})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, ".prettierrc.json")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "babel.config.json"), []byte("{}\n"), 0o644))

	diffs, err := svc.Diff(ctx)
	require.NoError(t, err)

	states := make(map[string]driving.DiffState, len(diffs))
	for _, diff := range diffs {
		states[diff.Path] = diff.State
	}
	assert.Equal(t, driving.DiffMissing, states[".prettierrc.json"])
	assert.Equal(t, driving.DiffStale, states["babel.config.json"])
	assert.Equal(t, driving.DiffCurrent, states["webpack.config.js"])
}

// TestSplitTemplateRef tests template reference parsing
func TestSplitTemplateRef(t *testing.T) {
	owner, repo, err := splitTemplateRef("acme/starter")
	require.NoError(t, err)
	assert.Equal(t, "acme", owner)
	assert.Equal(t, "starter", repo)

	for _, bad := range []string{"", "acme", "acme/", "/starter", "a/b/c"} {
		_, _, err := splitTemplateRef(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "ref %q", bad)
	}
}
