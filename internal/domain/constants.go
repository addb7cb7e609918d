package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is used for config documents written for the user (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for settings and logs (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout constants
const (
	// DefaultProbeTimeout bounds short organize invocations such as --version
	DefaultProbeTimeout = 10 * time.Second
)

// Limit constants
const (
	// DefaultMaxRecentFiles caps the recent file list
	DefaultMaxRecentFiles = 10
	// DefaultMaxLogHistory caps the number of stored run logs
	DefaultMaxLogHistory = 100
	// DefaultLogListLimit is the default number of run logs to display
	DefaultLogListLimit = 20
)

// Document defaults
const (
	// DefaultRuleName is the name given to rules created from the UI
	DefaultRuleName = "New Rule"
	// DefaultLocationPath is the location of newly created rules
	DefaultLocationPath = "~/Downloads"
	// DefaultEchoMessage is the message of the echo action of new rules
	DefaultEchoMessage = "Found: {path}"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
