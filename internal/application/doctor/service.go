package doctor

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	Settings ports.SettingsStore
	Runner   ports.OrganizeRunner
	Logs     ports.RunLogRepository
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
}

// Run executes checks and returns a report. The error is set only when the
// settings cannot be loaded, since every later check depends on them.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Settings", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Settings", s.Settings.Path()))

	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	python := settings.Interpreter()
	if resolved, err := lookPath(python); err != nil {
		checks = append(checks, fail("Python", fmt.Sprintf("%s not found: %v", python, err)))
	} else {
		checks = append(checks, ok("Python", resolved))
	}

	if s.Runner != nil {
		status := s.Runner.CheckInstalled(ctx)
		if status.Installed {
			checks = append(checks, ok("organize", status.Version))
			if path, err := s.Runner.DefaultConfigPath(ctx); err == nil && path != "" {
				checks = append(checks, ok("Default config", path))
			} else {
				checks = append(checks, warn("Default config", "could not be determined"))
			}
		} else {
			checks = append(checks, fail("organize", installHint(python, status.Error)))
		}
	} else {
		checks = append(checks, warn("organize", "runner not initialized"))
	}

	if s.Logs != nil {
		if logs, err := s.Logs.List(0); err != nil {
			checks = append(checks, warn("Run logs", err.Error()))
		} else {
			checks = append(checks, ok("Run logs", fmt.Sprintf("%d stored in %s", len(logs), s.Logs.Path())))
		}
	}

	return domain.HealthReport{Checks: checks}, nil
}

func installHint(python, detail string) string {
	hint := fmt.Sprintf("not installed; try `%s -m pip install organize-tool`", python)
	if detail != "" {
		return detail + "; " + hint
	}
	return hint
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
