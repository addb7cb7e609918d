// Package catalog is the static registry of filter and action types known to
// the editor. Tables are built once at package initialisation and never
// modified; lookups hand out copies.
package catalog

import "github.com/doeshing/organize-desk/internal/domain"

var (
	filtersByName = index(domain.KindFilter, filterDefinitions)
	actionsByName = index(domain.KindAction, actionDefinitions)
)

func index(kind domain.DefinitionKind, defs []domain.Definition) map[string]domain.Definition {
	m := make(map[string]domain.Definition, len(defs))
	for i := range defs {
		defs[i].Kind = kind
		m[defs[i].Name] = defs[i]
	}
	return m
}

// Lookup finds the definition of a filter or action type.
func Lookup(kind domain.DefinitionKind, name string) (domain.Definition, bool) {
	var (
		def domain.Definition
		ok  bool
	)
	switch kind {
	case domain.KindFilter:
		def, ok = filtersByName[name]
	case domain.KindAction:
		def, ok = actionsByName[name]
	}
	if !ok {
		return domain.Definition{}, false
	}
	return copyDefinition(def), true
}

// LookupFilter is Lookup for filters.
func LookupFilter(name string) (domain.Definition, bool) {
	return Lookup(domain.KindFilter, name)
}

// LookupAction is Lookup for actions.
func LookupAction(name string) (domain.Definition, bool) {
	return Lookup(domain.KindAction, name)
}

// Require is Lookup that reports a missing entry as *domain.UnknownDefinitionError.
func Require(kind domain.DefinitionKind, name string) (domain.Definition, error) {
	def, ok := Lookup(kind, name)
	if !ok {
		return domain.Definition{}, &domain.UnknownDefinitionError{Kind: kind, Name: name}
	}
	return def, nil
}

// Filters lists filter definitions in catalog order.
func Filters() []domain.Definition {
	return copyAll(filterDefinitions)
}

// Actions lists action definitions in catalog order.
func Actions() []domain.Definition {
	return copyAll(actionDefinitions)
}

func copyAll(defs []domain.Definition) []domain.Definition {
	out := make([]domain.Definition, len(defs))
	for i, d := range defs {
		out[i] = copyDefinition(d)
	}
	return out
}

func copyDefinition(d domain.Definition) domain.Definition {
	props := make([]domain.Property, len(d.Properties))
	for i, p := range d.Properties {
		if p.Options != nil {
			opts := make([]domain.Option, len(p.Options))
			copy(opts, p.Options)
			p.Options = opts
		}
		props[i] = p
	}
	d.Properties = props
	return d
}
