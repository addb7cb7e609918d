package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/organize-desk/internal/domain"
)

func TestFileLoader_LoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	loader := NewFileLoader(path)

	got, err := loader.Load(context.Background())
	require.NoError(t, err)
	if diff := cmp.Diff(domain.DefaultSettings(), got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	require.NoError(t, err, "default settings file should be written")
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileLoader_HydratesMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nfont_size: 0\nconfirm_dangerous_actions: false\n"), 0o600))

	got, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "dark", got.Theme)
	assert.Equal(t, 14, got.FontSize)
	assert.Equal(t, "python3", got.PythonPath)
	assert.False(t, got.ConfirmDangerousActions)
	assert.True(t, got.AutoSave)
	assert.Equal(t, 10, got.MaxRecentFiles)
	assert.NotNil(t, got.RecentConfigs)
}

func TestFileLoader_SaveRoundTrip(t *testing.T) {
	loader := NewFileLoader(filepath.Join(t.TempDir(), "settings.yaml"))
	settings := domain.DefaultSettings()
	settings.PythonPath = "/opt/venv/bin/python"
	settings.RecentConfigs = []string{"/a.yaml", "/b.yaml"}

	require.NoError(t, loader.Save(context.Background(), settings))
	got, err := loader.Load(context.Background())
	require.NoError(t, err)

	if diff := cmp.Diff(settings, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFileLoader_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	t.Setenv(EnvSettingsPath, path)

	assert.Equal(t, path, NewFileLoader("").Path())
}

func TestFileLoader_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed\n"), 0o600))

	_, err := NewFileLoader(path).Load(context.Background())
	assert.Error(t, err)
}
