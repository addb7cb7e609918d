package domain

// Settings mirrors ~/.organize-desk/settings.yaml.
type Settings struct {
	PythonPath              string   `yaml:"python_path"`
	OrganizePath            string   `yaml:"organize_path"`
	Theme                   string   `yaml:"theme"`
	FontSize                int      `yaml:"font_size"`
	AutoSave                bool     `yaml:"auto_save"`
	RecentConfigs           []string `yaml:"recent_configs"`
	DefaultConfigDir        string   `yaml:"default_config_dir"`
	ShowSystemFiles         bool     `yaml:"show_system_files"`
	ConfirmDangerousActions bool     `yaml:"confirm_dangerous_actions"`
	MaxRecentFiles          int      `yaml:"max_recent_files"`
	MaxLogHistory           int      `yaml:"max_log_history"`
}

// Theme values accepted by the settings validator.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		PythonPath:              "python3",
		Theme:                   ThemeSystem,
		FontSize:                14,
		AutoSave:                true,
		RecentConfigs:           []string{},
		ConfirmDangerousActions: true,
		MaxRecentFiles:          DefaultMaxRecentFiles,
		MaxLogHistory:           DefaultMaxLogHistory,
	}
}

// Interpreter returns the python executable, falling back to python3.
func (s Settings) Interpreter() string {
	if s.PythonPath == "" {
		return "python3"
	}
	return s.PythonPath
}

// PushRecent moves path to the front of the recent list and caps its length.
func (s *Settings) PushRecent(path string) []string {
	limit := s.MaxRecentFiles
	if limit <= 0 {
		limit = DefaultMaxRecentFiles
	}
	updated := make([]string, 0, len(s.RecentConfigs)+1)
	updated = append(updated, path)
	for _, p := range s.RecentConfigs {
		if p != path {
			updated = append(updated, p)
		}
	}
	if len(updated) > limit {
		updated = updated[:limit]
	}
	s.RecentConfigs = updated
	return updated
}
