package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/fileio"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
	"github.com/doeshing/organize-desk/internal/ports"
)

// EnvSettingsPath overrides the settings file location.
const EnvSettingsPath = "ORGANIZE_DESK_SETTINGS"

// FileLoader loads settings from ~/.organize-desk/settings.yaml (overridable via ORGANIZE_DESK_SETTINGS).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path uses the default location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.SettingsStore. A missing file is created with defaults.
func (l *FileLoader) Load(context.Context) (domain.Settings, error) {
	path := l.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			settings := domain.DefaultSettings()
			if err := writeSettings(path, settings); err != nil {
				return domain.Settings{}, err
			}
			return settings, nil
		}
		return domain.Settings{}, err
	}

	settings := domain.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return hydrateDefaults(settings), nil
}

// Save implements ports.SettingsStore.
func (l *FileLoader) Save(_ context.Context, settings domain.Settings) error {
	return writeSettings(l.Path(), settings)
}

// Path returns the settings file location.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv(EnvSettingsPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "settings.yaml")
}

func writeSettings(path string, settings domain.Settings) error {
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return fileio.WriteAtomic(path, raw, domain.SecureFilePermissions, false)
}

func hydrateDefaults(s domain.Settings) domain.Settings {
	defaults := domain.DefaultSettings()
	if s.PythonPath == "" {
		s.PythonPath = defaults.PythonPath
	}
	if s.Theme == "" {
		s.Theme = defaults.Theme
	}
	if s.FontSize <= 0 {
		s.FontSize = defaults.FontSize
	}
	if s.MaxRecentFiles <= 0 {
		s.MaxRecentFiles = defaults.MaxRecentFiles
	}
	if s.MaxLogHistory <= 0 {
		s.MaxLogHistory = defaults.MaxLogHistory
	}
	if s.RecentConfigs == nil {
		s.RecentConfigs = []string{}
	}
	return s
}

var _ ports.SettingsStore = (*FileLoader)(nil)
