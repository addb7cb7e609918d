package codec

import (
	"github.com/doeshing/organize-desk/assets"
	"github.com/doeshing/organize-desk/internal/domain"
)

// DefaultDocument is the starter text for a new config file.
func DefaultDocument() string {
	return string(assets.StarterConfigYAML)
}

// NewID returns a fresh process-local identifier.
func NewID() string {
	return newID()
}

// NewRule returns a minimal valid rule: one default location and an echo action.
func NewRule() domain.Rule {
	return domain.Rule{
		ID:         newID(),
		Name:       domain.DefaultRuleName,
		Enabled:    true,
		Targets:    domain.TargetFiles,
		Locations:  []domain.Location{{Path: domain.DefaultLocationPath}},
		FilterMode: domain.FilterModeAll,
		Filters:    []domain.Filter{},
		Actions: []domain.Action{{
			ID:     newID(),
			Type:   "echo",
			Config: domain.NewParams("msg", domain.DefaultEchoMessage),
		}},
		Tags: []string{},
	}
}

// NewFilter returns a filter of the given type with an empty config.
func NewFilter(typ string) domain.Filter {
	return domain.Filter{ID: newID(), Type: typ}
}

// NewAction returns an action of the given type with an empty config.
func NewAction(typ string) domain.Action {
	return domain.Action{ID: newID(), Type: typ}
}

// Reidentify assigns fresh identifiers to a rule and everything it owns.
func Reidentify(rule *domain.Rule) {
	rule.ID = newID()
	for i := range rule.Filters {
		rule.Filters[i].ID = newID()
	}
	for i := range rule.Actions {
		rule.Actions[i].ID = newID()
	}
}
