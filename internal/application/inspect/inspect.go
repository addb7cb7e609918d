// Package inspect reports problems in a decoded config that the codec lets
// through: unknown types, missing required properties, filters or actions
// that do not apply to a rule's targets and malformed location globs.
package inspect

import (
	"errors"
	"fmt"

	"github.com/gobwas/glob"

	"github.com/doeshing/organize-desk/internal/catalog"
	"github.com/doeshing/organize-desk/internal/domain"
)

// Inspect checks every rule of cfg. Diagnostics are ordered by rule, then by
// location, filter and action position.
func Inspect(cfg domain.Config) []domain.Diagnostic {
	var diags []domain.Diagnostic
	for i, rule := range cfg.Rules {
		diags = append(diags, inspectRule(i, rule)...)
	}
	return diags
}

// HasErrors reports whether any diagnostic is an error.
func HasErrors(diags []domain.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == domain.SeverityError {
			return true
		}
	}
	return false
}

func inspectRule(idx int, rule domain.Rule) []domain.Diagnostic {
	var diags []domain.Diagnostic
	add := func(sev domain.Severity, path string, err error) {
		diags = append(diags, domain.Diagnostic{Severity: sev, Rule: idx, Path: path, Message: err.Error(), Err: err})
	}

	targets := rule.EffectiveTargets()
	if targets != domain.TargetFiles && targets != domain.TargetDirs {
		add(domain.SeverityError, "targets", fmt.Errorf("targets must be files or dirs, got %q", targets))
		targets = domain.TargetFiles
	}
	switch rule.EffectiveFilterMode() {
	case domain.FilterModeAll, domain.FilterModeAny, domain.FilterModeNone:
	default:
		add(domain.SeverityError, "filter_mode", fmt.Errorf("filter_mode must be all, any or none, got %q", rule.FilterMode))
	}

	if len(rule.Locations) == 0 {
		add(domain.SeverityWarning, "locations", errors.New("rule has no locations"))
	}
	for i, loc := range rule.Locations {
		path := fmt.Sprintf("locations[%d]", i)
		if loc.Path == "" {
			add(domain.SeverityError, path, errors.New("location path is empty"))
		}
		if loc.MinDepth != nil && loc.MaxDepth != nil && *loc.MinDepth > *loc.MaxDepth {
			add(domain.SeverityError, path, fmt.Errorf("min_depth %d is greater than max_depth %d", *loc.MinDepth, *loc.MaxDepth))
		}
		for _, field := range globFields(loc) {
			for j, pattern := range field.patterns {
				if _, err := glob.Compile(pattern); err != nil {
					add(domain.SeverityError, fmt.Sprintf("%s.%s[%d]", path, field.name, j), fmt.Errorf("invalid glob %q: %w", pattern, err))
				}
			}
		}
	}

	for i, f := range rule.Filters {
		path := fmt.Sprintf("filters[%d]", i)
		for _, err := range checkEntry(domain.KindFilter, f.Type, f.Config, targets) {
			add(severityOf(err), path, err)
		}
	}

	if len(rule.Actions) == 0 {
		add(domain.SeverityWarning, "actions", errors.New("rule has no actions"))
	}
	for i, a := range rule.Actions {
		path := fmt.Sprintf("actions[%d]", i)
		for _, err := range checkEntry(domain.KindAction, a.Type, a.Config, targets) {
			add(severityOf(err), path, err)
		}
	}
	return diags
}

type globField struct {
	name     string
	patterns []string
}

func globFields(loc domain.Location) []globField {
	return []globField{
		{name: "filter", patterns: loc.Filter},
		{name: "filter_dirs", patterns: loc.FilterDirs},
		{name: "exclude_files", patterns: loc.ExcludeFiles},
		{name: "exclude_dirs", patterns: loc.ExcludeDirs},
	}
}

// notApplicableError marks a definition used with targets it does not support.
type notApplicableError struct {
	kind    domain.DefinitionKind
	name    string
	targets domain.Targets
}

func (e *notApplicableError) Error() string {
	return fmt.Sprintf("%s %q does not apply to %s", e.kind, e.name, e.targets)
}

// missingPropertyError marks a required property without a value.
type missingPropertyError struct {
	name     string
	property string
}

func (e *missingPropertyError) Error() string {
	return fmt.Sprintf("%s: missing required property %q", e.name, e.property)
}

func checkEntry(kind domain.DefinitionKind, typ string, cfg domain.Params, targets domain.Targets) []error {
	def, err := catalog.Require(kind, typ)
	if err != nil {
		return []error{err}
	}
	var errs []error
	if !def.Supports(targets) {
		errs = append(errs, &notApplicableError{kind: kind, name: typ, targets: targets})
	}
	for _, prop := range def.Properties {
		if !prop.Required {
			continue
		}
		if v, ok := cfg.Get(prop.Name); !ok || isEmpty(v) {
			errs = append(errs, &missingPropertyError{name: typ, property: prop.Name})
		}
	}
	return errs
}

// severityOf grades unknown types as warnings; they round-trip unchanged.
func severityOf(err error) domain.Severity {
	var unknown *domain.UnknownDefinitionError
	if errors.As(err, &unknown) {
		return domain.SeverityWarning
	}
	return domain.SeverityError
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}
