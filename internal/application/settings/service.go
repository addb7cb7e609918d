// Package settings implements key-level access to the editor settings.
package settings

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/ports"
)

// Service reads and updates settings through a ports.SettingsStore.
type Service struct {
	Store  ports.SettingsStore
	Logger ports.Logger
}

// Load returns the current settings.
func (s *Service) Load(ctx context.Context) (domain.Settings, error) {
	settings, err := s.Store.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// Keys lists the setting names in file order.
func Keys() []string {
	node := &yaml.Node{}
	_ = node.Encode(domain.DefaultSettings())
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		keys = append(keys, node.Content[i].Value)
	}
	return keys
}

// Get returns the value of one setting.
func (s *Service) Get(ctx context.Context, key string) (interface{}, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	values, err := toMap(settings)
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	return value, nil
}

// Set parses raw as YAML, stores it under key and saves the result after
// validation.
func (s *Service) Set(ctx context.Context, key, raw string) (domain.Settings, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	values, err := toMap(settings)
	if err != nil {
		return domain.Settings{}, err
	}
	if _, ok := values[key]; !ok {
		return domain.Settings{}, fmt.Errorf("unknown setting %q", key)
	}
	values[key] = parseYAMLValue(raw)

	updated, err := fromMap(values)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := s.save(ctx, updated); err != nil {
		return domain.Settings{}, err
	}
	s.info("setting updated", map[string]interface{}{"key": key})
	return updated, nil
}

// Reset restores defaults. Recent files are kept unless clearRecent is set.
func (s *Service) Reset(ctx context.Context, clearRecent bool) (domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if !clearRecent {
		if current, err := s.Store.Load(ctx); err == nil {
			defaults.RecentConfigs = current.RecentConfigs
			if len(defaults.RecentConfigs) > defaults.MaxRecentFiles {
				defaults.RecentConfigs = defaults.RecentConfigs[:defaults.MaxRecentFiles]
			}
		}
	}
	if err := s.save(ctx, defaults); err != nil {
		return domain.Settings{}, err
	}
	return defaults, nil
}

// Diff describes how the current settings differ from the defaults. An empty
// string means no difference.
func (s *Service) Diff(ctx context.Context) (string, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return cmp.Diff(domain.DefaultSettings(), settings), nil
}

// AddRecentFile moves path to the front of the recent list.
func (s *Service) AddRecentFile(ctx context.Context, path string) ([]string, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	recent := settings.PushRecent(path)
	if err := s.save(ctx, settings); err != nil {
		return nil, err
	}
	return recent, nil
}

// RecentFiles returns the recent list, most recent first.
func (s *Service) RecentFiles(ctx context.Context) ([]string, error) {
	settings, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return settings.RecentConfigs, nil
}

// ClearRecentFiles empties the recent list.
func (s *Service) ClearRecentFiles(ctx context.Context) error {
	settings, err := s.Load(ctx)
	if err != nil {
		return err
	}
	settings.RecentConfigs = []string{}
	return s.save(ctx, settings)
}

func (s *Service) save(ctx context.Context, settings domain.Settings) error {
	if err := Validate(settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}
	if err := s.Store.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *Service) info(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Info(msg, fields)
	}
}

// parseYAMLValue parses a string value as YAML, falling back to the literal string.
func parseYAMLValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil {
		return input
	}
	return parsed
}

func toMap(settings domain.Settings) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(settings)
	if err != nil {
		return nil, err
	}
	values := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func fromMap(values map[string]interface{}) (domain.Settings, error) {
	raw, err := yaml.Marshal(values)
	if err != nil {
		return domain.Settings{}, err
	}
	var settings domain.Settings
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil {
		return domain.Settings{}, err
	}
	if settings.RecentConfigs == nil {
		settings.RecentConfigs = []string{}
	}
	return settings, nil
}
