package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir is the per-user directory holding settings and run logs.
func AppDir() string {
	return filepath.Join(UserHomeDir(), ".organize-desk")
}

// ExpandPath resolves a leading ~ to the home directory and cleans the result.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		return UserHomeDir()
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(UserHomeDir(), path[2:])
	case path == "":
		return path
	}
	return filepath.Clean(path)
}
