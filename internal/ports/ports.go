// Package ports defines the interfaces between the application services and
// the adapters in the infrastructure layer.
//
// The application core (document session, run service, inspector, doctor)
// depends only on these abstractions. Concrete implementations live under
// internal/infrastructure and are wired together in internal/app.
package ports

import (
	"context"

	"github.com/doeshing/organize-desk/internal/domain"
)

// SettingsStore loads and persists the user's editor settings.
// Implementations typically read from ~/.organize-desk/settings.yaml.
type SettingsStore interface {
	Load(context.Context) (domain.Settings, error)
	Save(context.Context, domain.Settings) error
	Path() string
}

// RunLogRepository stores run logs. Records are immutable once saved.
type RunLogRepository interface {
	Save(domain.RunLog) error
	Get(id string) (domain.RunLog, error)
	// List returns the newest records first; limit <= 0 means all.
	List(limit int) ([]domain.RunLog, error)
	Delete(id string) error
	Clear() error
	// Prune keeps only the newest keep records.
	Prune(keep int) error
	ExportJSON(dest string) error
	Path() string
}

// OutputSink receives process output as it arrives.
type OutputSink interface {
	Write(chunk string, stream domain.Stream)
}

// OutputSinkFunc adapts a function to OutputSink.
type OutputSinkFunc func(chunk string, stream domain.Stream)

// Write calls f.
func (f OutputSinkFunc) Write(chunk string, stream domain.Stream) {
	f(chunk, stream)
}

// OrganizeRunner launches the external organize engine.
type OrganizeRunner interface {
	// Run pipes configText to `organize <verb> --stdin`. A non-zero exit is
	// reported through RunResult; the error is reserved for processes that
	// could not be started, in which case ExitCode is -1.
	Run(ctx context.Context, verb domain.Verb, configText string, opts domain.RunOptions, sink OutputSink) (domain.RunResult, error)
	CheckInstalled(ctx context.Context) domain.InstallStatus
	DefaultConfigPath(ctx context.Context) (string, error)
	ListConfigs(ctx context.Context) (string, error)
}

// DocumentFiles reads and writes config documents.
type DocumentFiles interface {
	Read(path string) (string, error)
	// Write replaces the file atomically.
	Write(path, content string) error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
