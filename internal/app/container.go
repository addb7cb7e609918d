package app

import (
	"context"

	"github.com/doeshing/organize-desk/internal/application/doctor"
	"github.com/doeshing/organize-desk/internal/application/document"
	"github.com/doeshing/organize-desk/internal/application/run"
	"github.com/doeshing/organize-desk/internal/application/settings"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/infrastructure/config"
	"github.com/doeshing/organize-desk/internal/infrastructure/fileio"
	"github.com/doeshing/organize-desk/internal/infrastructure/history"
	"github.com/doeshing/organize-desk/internal/infrastructure/organize"
	"github.com/doeshing/organize-desk/internal/pkg/logger"
	"github.com/doeshing/organize-desk/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	SettingsStore   ports.SettingsStore
	SettingsService *settings.Service
	Files           ports.DocumentFiles
	Runner          ports.OrganizeRunner
	RunLogs         ports.RunLogRepository
	RunService      *run.Service
	DoctorService   *doctor.Service
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph. A settings file that cannot
// be read is reported by the doctor; the container falls back to defaults so
// that `settings reset` can still repair it.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	log := logger.New(verbose)
	settingsStore := config.NewFileLoader("")
	current, err := settingsStore.Load(ctx)
	if err != nil {
		log.Warn("using default settings", map[string]interface{}{"path": settingsStore.Path(), "error": err.Error()})
		current = domain.DefaultSettings()
	}

	runner := organize.NewRunner(current.Interpreter(), log)
	runLogs := history.NewSQLiteStore("")
	settingsService := &settings.Service{Store: settingsStore, Logger: log}

	return &Container{
		SettingsStore:   settingsStore,
		SettingsService: settingsService,
		Files:           fileio.DocumentFiles{Backup: true},
		Runner:          runner,
		RunLogs:         runLogs,
		RunService: &run.Service{
			Runner:   runner,
			Logs:     runLogs,
			Settings: settingsStore,
			Logger:   log,
		},
		DoctorService: &doctor.Service{
			Settings: settingsStore,
			Runner:   runner,
			Logs:     runLogs,
		},
		Logger: log,
	}, nil
}

// NewSession opens an editing session backed by the container's adapters.
func (c *Container) NewSession() *document.Session {
	return document.NewSession(c.Files, c.SettingsService, c.Logger)
}
