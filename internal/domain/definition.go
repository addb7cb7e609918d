package domain

// DefinitionKind distinguishes the two catalogs.
type DefinitionKind string

const (
	KindFilter DefinitionKind = "filter"
	KindAction DefinitionKind = "action"
)

// PropertyKind is the value type an editor widget renders for a property.
type PropertyKind string

const (
	PropertyString    PropertyKind = "string"
	PropertyNumber    PropertyKind = "number"
	PropertyBoolean   PropertyKind = "boolean"
	PropertySelect    PropertyKind = "select"
	PropertyStringSet PropertyKind = "string[]"
	PropertyCode      PropertyKind = "code"
)

// Option is one entry of a select property.
type Option struct {
	Value string
	Label string
}

// Property describes one configurable key of a filter or action.
type Property struct {
	Name        string
	Label       string
	Kind        PropertyKind
	Required    bool
	Default     any
	Options     []Option
	Placeholder string
	Description string
}

// Definition is an immutable catalog entry for a filter or action type.
type Definition struct {
	Kind          DefinitionKind
	Name          string
	Label         string
	Description   string
	SupportsFiles bool
	SupportsDirs  bool
	Properties    []Property
}

// Property returns the named property.
func (d Definition) Property(name string) (Property, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Supports reports whether the definition applies to the given targets.
func (d Definition) Supports(t Targets) bool {
	if t == TargetDirs {
		return d.SupportsDirs
	}
	return d.SupportsFiles
}
