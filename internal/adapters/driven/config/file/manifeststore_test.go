package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webrig-labs/webrig-cli/internal/core/domain"
)

// TestManifestStore_RoundTrip tests save and reload
func TestManifestStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewManifestStore(dir)
	ctx := context.Background()

	assert.False(t, store.Exists())

	project := domain.DefaultProject("my-app", domain.PresetReact)
	project.Lint.Rules["no-alert"] = domain.SeverityError
	require.NoError(t, store.Save(ctx, project))
	assert.True(t, store.Exists())
	assert.Equal(t, filepath.Join(dir, ManifestFileName), store.Path())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "my-app", loaded.Name)
	assert.Equal(t, domain.PresetReact, loaded.Preset)
	assert.Equal(t, project.Bundle.Entries, loaded.Bundle.Entries)
	assert.Equal(t, domain.SeverityError, loaded.Lint.Rules["no-alert"])
	assert.Equal(t, project.Format.TrailingComma, loaded.Format.TrailingComma)
	assert.Equal(t, project.Serve.Port, loaded.Serve.Port)
}

// TestManifestStore_Load_NoManifest tests the missing-file error
func TestManifestStore_Load_NoManifest(t *testing.T) {
	store := NewManifestStore(t.TempDir())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoManifest)
}

// TestManifestStore_Load_BadTOML tests the parse error
func TestManifestStore_Load_BadTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("name = \n"), 0o644))

	store := NewManifestStore(dir)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)
}

// TestManifestStore_Load_InvalidProject tests semantic validation
func TestManifestStore_Load_InvalidProject(t *testing.T) {
	dir := t.TempDir()
	manifest := "name = \"My Bad Name\"\nversion = \"0.1.0\"\npreset = \"vanilla\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(manifest), 0o644))

	store := NewManifestStore(dir)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)
}

// TestManifestStore_Save_RejectsInvalid tests validation before write
func TestManifestStore_Save_RejectsInvalid(t *testing.T) {
	store := NewManifestStore(t.TempDir())

	project := domain.DefaultProject("my-app", domain.PresetVanilla)
	project.Serve.Port = 0

	err := store.Save(context.Background(), project)
	assert.ErrorIs(t, err, domain.ErrInvalidManifest)
	assert.False(t, store.Exists())
}

// TestManifestStore_Save_NoTempLeftover tests the rename cleanup
func TestManifestStore_Save_NoTempLeftover(t *testing.T) {
	dir := t.TempDir()
	store := NewManifestStore(dir)

	require.NoError(t, store.Save(context.Background(), domain.DefaultProject("my-app", domain.PresetVanilla)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ManifestFileName, entries[0].Name())
}
