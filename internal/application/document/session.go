// Package document holds the state of the config document being edited.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/organize-desk/internal/codec"
	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/ports"
)

// ViewMode selects which representation of the document is authoritative.
type ViewMode string

const (
	// ModeVisual edits the decoded model; the text is derived from it.
	ModeVisual ViewMode = "visual"
	// ModeYAML edits the raw text; the model is derived from it.
	ModeYAML ViewMode = "yaml"
)

// ErrNoPath is returned by Save when the document was never saved or opened.
var ErrNoPath = errors.New("document has no file path")

// RecentRecorder remembers opened files. settings.Service satisfies it.
type RecentRecorder interface {
	AddRecentFile(ctx context.Context, path string) ([]string, error)
}

// Session is a single open document.
type Session struct {
	files  ports.DocumentFiles
	recent RecentRecorder
	logger ports.Logger

	config   domain.Config
	text     string
	path     string
	modified bool
	mode     ViewMode
	selected string
	// decoded is the text the model was last derived from or encoded to.
	decoded string
}

// NewSession returns a session holding the starter document. recent and
// logger may be nil.
func NewSession(files ports.DocumentFiles, recent RecentRecorder, logger ports.Logger) *Session {
	s := &Session{files: files, recent: recent, logger: logger}
	s.New()
	return s
}

// New replaces the document with the starter template.
func (s *Session) New() {
	s.text = codec.DefaultDocument()
	cfg, err := codec.Decode(s.text)
	if err != nil {
		cfg = domain.Config{Rules: []domain.Rule{}}
	}
	s.config = cfg
	s.path = ""
	s.modified = false
	s.mode = ModeVisual
	s.selectFirst()
}

// Open reads and decodes path. When the text cannot be decoded the session
// switches to yaml mode with the raw text loaded and the decode error is
// returned, so the text can still be fixed and saved.
func (s *Session) Open(ctx context.Context, path string) error {
	text, err := s.files.Read(path)
	if err != nil {
		return err
	}
	s.path = path
	s.text = text
	s.modified = false
	s.record(ctx, path)

	cfg, err := codec.Decode(text)
	if err != nil {
		s.config = domain.Config{Rules: []domain.Rule{}}
		s.mode = ModeYAML
		s.selected = ""
		return err
	}
	s.config = cfg
	s.mode = ModeVisual
	s.selectFirst()
	s.debug("document opened", map[string]interface{}{"path": path, "rules": len(cfg.Rules)})
	return nil
}

// Save writes the document to its current path.
func (s *Session) Save(ctx context.Context) error {
	if s.path == "" {
		return ErrNoPath
	}
	return s.SaveAs(ctx, s.path)
}

// SaveAs writes the document to path and makes it the current path.
func (s *Session) SaveAs(ctx context.Context, path string) error {
	text, err := s.Text()
	if err != nil {
		return err
	}
	if err := s.files.Write(path, text); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if path != s.path {
		s.record(ctx, path)
	}
	s.path = path
	s.text = text
	s.modified = false
	s.debug("document saved", map[string]interface{}{"path": path})
	return nil
}

// Text returns the YAML for the document. In visual mode it is encoded from
// the model, in yaml mode the raw text is returned as typed.
func (s *Session) Text() (string, error) {
	if s.mode == ModeYAML {
		return s.text, nil
	}
	return codec.Encode(s.config)
}

// SetText replaces the raw text. It is only allowed in yaml mode.
func (s *Session) SetText(text string) error {
	if s.mode != ModeYAML {
		return errors.New("text can only be edited in yaml mode")
	}
	if text != s.text {
		s.text = text
		s.modified = true
	}
	return nil
}

// SetViewMode switches representation. Switching to yaml encodes the model;
// switching back to visual decodes the text, and a decode failure leaves the
// session in yaml mode with the error returned.
func (s *Session) SetViewMode(mode ViewMode) error {
	if mode == s.mode {
		return nil
	}
	switch mode {
	case ModeYAML:
		text, err := codec.Encode(s.config)
		if err != nil {
			return err
		}
		s.text = text
		s.decoded = text
	case ModeVisual:
		if err := s.sync(); err != nil {
			return err
		}
		if s.config.RuleIndex(s.selected) < 0 {
			s.selectFirst()
		}
	default:
		return fmt.Errorf("unknown view mode %q", mode)
	}
	s.mode = mode
	return nil
}

// Config returns a copy of the current model.
func (s *Session) Config() domain.Config {
	out := domain.Config{Rules: make([]domain.Rule, len(s.config.Rules))}
	for i, r := range s.config.Rules {
		out.Rules[i] = r.Clone()
	}
	return out
}

// Path returns the file the document was opened from or saved to.
func (s *Session) Path() string { return s.path }

// Modified reports unsaved changes.
func (s *Session) Modified() bool { return s.modified }

// Mode returns the active view mode.
func (s *Session) Mode() ViewMode { return s.mode }

// Selected returns the id of the selected rule, or "".
func (s *Session) Selected() string { return s.selected }

// Select marks the rule with the given id as selected.
func (s *Session) Select(id string) error {
	if s.config.RuleIndex(id) < 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	s.selected = id
	return nil
}

// RuleAt returns the id of the rule at position i.
func (s *Session) RuleAt(i int) (string, error) {
	if err := s.sync(); err != nil {
		return "", err
	}
	if i < 0 || i >= len(s.config.Rules) {
		return "", fmt.Errorf("rule index %d out of range (0-%d)", i, len(s.config.Rules)-1)
	}
	return s.config.Rules[i].ID, nil
}

// AddRule appends a new default rule and selects it.
func (s *Session) AddRule() (domain.Rule, error) {
	rule := codec.NewRule()
	err := s.edit(func(cfg *domain.Config) error {
		cfg.AddRule(rule)
		return nil
	})
	if err != nil {
		return domain.Rule{}, err
	}
	s.selected = rule.ID
	return rule, nil
}

// UpdateRule replaces the rule with the given id. The id is kept.
func (s *Session) UpdateRule(id string, rule domain.Rule) error {
	return s.edit(func(cfg *domain.Config) error {
		rule.ID = id
		return cfg.ReplaceRule(id, rule.Clone())
	})
}

// DeleteRule removes a rule. When it was selected the selection moves to the
// first remaining rule.
func (s *Session) DeleteRule(id string) error {
	err := s.edit(func(cfg *domain.Config) error {
		return cfg.RemoveRule(id)
	})
	if err != nil {
		return err
	}
	if s.selected == id {
		s.selectFirst()
	}
	return nil
}

// MoveRule moves the rule at position from to position to.
func (s *Session) MoveRule(from, to int) error {
	return s.edit(func(cfg *domain.Config) error {
		return cfg.MoveRule(from, to)
	})
}

// DuplicateRule inserts a deep copy with fresh ids right after the source and
// selects it.
func (s *Session) DuplicateRule(id string) (domain.Rule, error) {
	var dup domain.Rule
	err := s.edit(func(cfg *domain.Config) error {
		i := cfg.RuleIndex(id)
		if i < 0 {
			return fmt.Errorf("rule %s not found", id)
		}
		dup = cfg.Rules[i].Clone()
		codec.Reidentify(&dup)
		dup.Name = copyName(dup.Name)
		cfg.InsertRule(i+1, dup)
		return nil
	})
	if err != nil {
		return domain.Rule{}, err
	}
	s.selected = dup.ID
	return dup, nil
}

func copyName(name string) string {
	if name == "" {
		return "Rule (copy)"
	}
	return name + " (copy)"
}

// AddFilter appends a filter of the given type to a rule.
func (s *Session) AddFilter(ruleID, typ string) (domain.Filter, error) {
	f := codec.NewFilter(typ)
	err := s.editRule(ruleID, func(r *domain.Rule) error {
		r.AddFilter(f)
		return nil
	})
	return f, err
}

// RemoveFilter deletes a filter from a rule.
func (s *Session) RemoveFilter(ruleID, filterID string) error {
	return s.editRule(ruleID, func(r *domain.Rule) error {
		return r.RemoveFilter(filterID)
	})
}

// ToggleNegation flips the negation of a filter and returns the new state.
func (s *Session) ToggleNegation(ruleID, filterID string) (bool, error) {
	var negated bool
	err := s.editRule(ruleID, func(r *domain.Rule) error {
		var err error
		negated, err = r.ToggleNegation(filterID)
		return err
	})
	return negated, err
}

// AddAction appends an action of the given type to a rule.
func (s *Session) AddAction(ruleID, typ string) (domain.Action, error) {
	a := codec.NewAction(typ)
	err := s.editRule(ruleID, func(r *domain.Rule) error {
		r.AddAction(a)
		return nil
	})
	return a, err
}

// RemoveAction deletes an action from a rule.
func (s *Session) RemoveAction(ruleID, actionID string) error {
	return s.editRule(ruleID, func(r *domain.Rule) error {
		return r.RemoveAction(actionID)
	})
}

// MoveAction reorders the actions of a rule.
func (s *Session) MoveAction(ruleID string, from, to int) error {
	return s.editRule(ruleID, func(r *domain.Rule) error {
		return r.MoveAction(from, to)
	})
}

func (s *Session) editRule(id string, fn func(*domain.Rule) error) error {
	return s.edit(func(cfg *domain.Config) error {
		rule, ok := cfg.FindRule(id)
		if !ok {
			return fmt.Errorf("rule %s not found", id)
		}
		return fn(rule)
	})
}

// edit applies fn to a working copy of the model and commits it only when fn
// succeeds. In yaml mode the text is decoded first and re-encoded afterwards.
func (s *Session) edit(fn func(*domain.Config) error) error {
	if err := s.sync(); err != nil {
		return err
	}
	working := s.Config()
	if err := fn(&working); err != nil {
		return err
	}
	if s.mode == ModeYAML {
		text, err := codec.Encode(working)
		if err != nil {
			return err
		}
		s.text = text
		s.decoded = text
	}
	s.config = working
	s.modified = true
	return nil
}

// sync refreshes the model from the text in yaml mode. Ids stay stable
// while the text is unchanged.
func (s *Session) sync() error {
	if s.mode != ModeYAML || s.text == s.decoded {
		return nil
	}
	cfg, err := codec.Decode(s.text)
	if err != nil {
		return err
	}
	s.config = cfg
	s.decoded = s.text
	return nil
}

func (s *Session) selectFirst() {
	s.selected = ""
	if len(s.config.Rules) > 0 {
		s.selected = s.config.Rules[0].ID
	}
}

func (s *Session) record(ctx context.Context, path string) {
	if s.recent == nil {
		return
	}
	if _, err := s.recent.AddRecentFile(ctx, path); err != nil && s.logger != nil {
		s.logger.Warn("failed to record recent file", map[string]interface{}{"path": path, "error": err.Error()})
	}
}

func (s *Session) debug(msg string, fields map[string]interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, fields)
	}
}
