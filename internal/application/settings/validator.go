package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/doeshing/organize-desk/internal/domain"
)

const (
	minFontSize = 8
	maxFontSize = 32
)

// Validate ensures settings are usable before they are written.
func Validate(s domain.Settings) error {
	if strings.TrimSpace(s.PythonPath) == "" {
		return errors.New("python_path must be set")
	}
	switch s.Theme {
	case domain.ThemeLight, domain.ThemeDark, domain.ThemeSystem:
	default:
		return fmt.Errorf("theme must be light|dark|system, got %s", s.Theme)
	}
	if s.FontSize < minFontSize || s.FontSize > maxFontSize {
		return fmt.Errorf("font_size must be between %d and %d, got %d", minFontSize, maxFontSize, s.FontSize)
	}
	if s.MaxRecentFiles <= 0 {
		return fmt.Errorf("max_recent_files must be > 0")
	}
	if s.MaxLogHistory <= 0 {
		return fmt.Errorf("max_log_history must be > 0")
	}
	if len(s.RecentConfigs) > s.MaxRecentFiles {
		return fmt.Errorf("recent_configs holds %d entries, more than max_recent_files (%d)", len(s.RecentConfigs), s.MaxRecentFiles)
	}
	return nil
}
