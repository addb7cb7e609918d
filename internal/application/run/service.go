// Package run executes simulations and real runs through organize and keeps
// a log of each invocation.
package run

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/ports"
)

// ErrConfirmationRequired is returned for a real run of a config with
// destructive actions when the user has not confirmed it.
var ErrConfirmationRequired = errors.New("config contains destructive actions; confirmation required")

// DangerousActions are the action types that need confirmation before a run.
var DangerousActions = []string{"delete", "trash", "shell", "python"}

// Request describes one invocation.
type Request struct {
	Verb       domain.Verb
	ConfigText string
	ConfigName string
	Options    domain.RunOptions
	// Confirmed acknowledges destructive actions for VerbRun.
	Confirmed bool
}

// Service runs organize and records run logs.
type Service struct {
	Runner   ports.OrganizeRunner
	Logs     ports.RunLogRepository
	Settings ports.SettingsStore
	Logger   ports.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Execute runs the request, forwarding output to sink while it arrives, and
// stores the resulting log. A non-zero exit or a process that could not be
// started still produces a saved log with Success false; the error return is
// reserved for invalid requests and storage failures.
func (s *Service) Execute(ctx context.Context, req Request, sink ports.OutputSink) (domain.RunLog, error) {
	if s.Runner == nil || s.Logs == nil {
		return domain.RunLog{}, errors.New("run.Service dependencies not satisfied")
	}
	if !req.Verb.Valid() {
		return domain.RunLog{}, fmt.Errorf("unknown verb %q", req.Verb)
	}

	settings := s.settings(ctx)
	if req.Verb == domain.VerbRun && settings.ConfirmDangerousActions && !req.Confirmed {
		if found := DangerousIn(req.ConfigText); len(found) > 0 {
			s.warn("run blocked pending confirmation", map[string]interface{}{"actions": found})
			return domain.RunLog{}, fmt.Errorf("%w: %v", ErrConfirmationRequired, found)
		}
	}

	var (
		mu     sync.Mutex
		output domain.OutputLog
	)
	tee := ports.OutputSinkFunc(func(chunk string, stream domain.Stream) {
		mu.Lock()
		output.Append(chunk, stream)
		mu.Unlock()
		if sink != nil {
			sink.Write(chunk, stream)
		}
	})

	started := s.now()
	s.info("starting organize", map[string]interface{}{"verb": string(req.Verb), "config": req.ConfigName})
	result, runErr := s.Runner.Run(ctx, req.Verb, req.ConfigText, req.Options, tee)
	if runErr != nil {
		tee.Write(runErr.Error()+"\n", domain.StreamStderr)
		if s.Logger != nil {
			s.Logger.Error("organize could not be started", runErr, map[string]interface{}{"verb": string(req.Verb)})
		}
	}

	log := domain.RunLog{
		ID:            uuid.NewString(),
		Timestamp:     started.UTC(),
		Command:       req.Verb,
		ConfigName:    req.ConfigName,
		ConfigContent: req.ConfigText,
		Output:        output.Lines(),
		ExitCode:      result.ExitCode,
		DurationMS:    result.DurationMS,
		Success:       runErr == nil && result.ExitCode == 0,
	}
	if runErr != nil {
		log.ExitCode = -1
	}

	if err := s.Logs.Save(log); err != nil {
		return log, fmt.Errorf("failed to save run log: %w", err)
	}
	if err := s.Logs.Prune(settings.MaxLogHistory); err != nil {
		s.warn("failed to prune run logs", map[string]interface{}{"error": err.Error()})
	}
	s.info("organize finished", map[string]interface{}{"id": log.ID, "exit_code": log.ExitCode, "success": log.Success})
	return log, nil
}

// DangerousIn lists the destructive action types used by the config text.
// Text that does not decode yields nothing; organize reports it instead.
func DangerousIn(text string) []string {
	cfg, err := codec.Decode(text)
	if err != nil {
		return nil
	}
	seen := map[string]bool{}
	for _, rule := range cfg.Rules {
		for _, a := range rule.Actions {
			for _, d := range DangerousActions {
				if a.Type == d {
					seen[d] = true
				}
			}
		}
	}
	found := make([]string, 0, len(seen))
	for name := range seen {
		found = append(found, name)
	}
	sort.Strings(found)
	return found
}

func (s *Service) settings(ctx context.Context) domain.Settings {
	if s.Settings == nil {
		return domain.DefaultSettings()
	}
	settings, err := s.Settings.Load(ctx)
	if err != nil {
		s.warn("using default settings", map[string]interface{}{"error": err.Error()})
		return domain.DefaultSettings()
	}
	if settings.MaxLogHistory <= 0 {
		settings.MaxLogHistory = domain.DefaultMaxLogHistory
	}
	return settings
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) info(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields)
	}
}

func (s *Service) warn(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Warn(msg, fields)
	}
}
