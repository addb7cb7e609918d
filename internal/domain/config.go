// Package domain defines the in-memory model edited by organize-desk.
//
// A Config is the visual counterpart of an organize configuration file. It is
// produced either by the factory helpers or by decoding YAML, and it is turned
// back into YAML by the codec. Identifiers on rules, filters and actions are
// process-local handles used for UI identity only; they are regenerated on
// every decode and never written to disk.
package domain

// Targets selects whether a rule works on files or directories.
type Targets string

const (
	TargetFiles Targets = "files"
	TargetDirs  Targets = "dirs"
)

// FilterMode controls how the filters of a rule are combined by the engine.
type FilterMode string

const (
	FilterModeAll  FilterMode = "all"
	FilterModeAny  FilterMode = "any"
	FilterModeNone FilterMode = "none"
)

// SearchStrategy is the traversal order of a location.
type SearchStrategy string

const (
	SearchDepth   SearchStrategy = "depth"
	SearchBreadth SearchStrategy = "breadth"
)

// Config is the root of the model. Rules keep their document order.
type Config struct {
	Rules []Rule
}

// RuleIndex returns the position of the rule with the given id, or -1.
func (c Config) RuleIndex(id string) int {
	for i, r := range c.Rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Rule is one locations + filters + actions unit.
type Rule struct {
	ID   string
	Name string
	// Enabled defaults to true in documents. The zero Rule is disabled, so
	// build rules with codec.NewRule or codec.Decode rather than literals.
	Enabled    bool
	Targets    Targets
	Locations  []Location
	Subfolders bool
	FilterMode FilterMode
	Filters    []Filter
	Actions    []Action
	Tags       []string
	// Extra holds rule keys the model does not know about.
	Extra Params
}

// EffectiveTargets resolves the empty value to files.
func (r Rule) EffectiveTargets() Targets {
	if r.Targets == "" {
		return TargetFiles
	}
	return r.Targets
}

// EffectiveFilterMode resolves the empty value to all.
func (r Rule) EffectiveFilterMode() FilterMode {
	if r.FilterMode == "" {
		return FilterModeAll
	}
	return r.FilterMode
}

// Clone returns a deep copy that shares no slices or maps with r. Identifiers
// are copied as well; callers that need fresh handles assign them afterwards.
func (r Rule) Clone() Rule {
	out := r
	out.Locations = make([]Location, len(r.Locations))
	for i, loc := range r.Locations {
		out.Locations[i] = loc.Clone()
	}
	if r.Filters != nil {
		out.Filters = make([]Filter, len(r.Filters))
		for i, f := range r.Filters {
			f.Config = f.Config.Clone()
			out.Filters[i] = f
		}
	}
	if r.Actions != nil {
		out.Actions = make([]Action, len(r.Actions))
		for i, a := range r.Actions {
			a.Config = a.Config.Clone()
			out.Actions[i] = a
		}
	}
	out.Tags = cloneStrings(r.Tags)
	out.Extra = r.Extra.Clone()
	return out
}

// Location is a search root of a rule.
type Location struct {
	Path               string
	MinDepth           *int
	MaxDepth           *int
	Search             SearchStrategy
	ExcludeFiles       []string
	ExcludeDirs        []string
	SystemExcludeFiles []string
	SystemExcludeDirs  []string
	IgnoreErrors       bool
	Filter             []string
	FilterDirs         []string
	// Extra holds keys the model does not know about so they are written back unchanged.
	Extra Params
}

// IsSimple reports whether only Path is set. Simple locations are written as
// bare strings.
//
// The system exclude lists count as set even when empty: an explicit empty
// list switches off the engine's built-in excludes.
func (l Location) IsSimple() bool {
	return l.MinDepth == nil &&
		l.MaxDepth == nil &&
		(l.Search == "" || l.Search == SearchDepth) &&
		len(l.ExcludeFiles) == 0 &&
		len(l.ExcludeDirs) == 0 &&
		l.SystemExcludeFiles == nil &&
		l.SystemExcludeDirs == nil &&
		!l.IgnoreErrors &&
		len(l.Filter) == 0 &&
		len(l.FilterDirs) == 0 &&
		l.Extra.Len() == 0
}

// Clone returns a deep copy of the location.
func (l Location) Clone() Location {
	out := l
	if l.MinDepth != nil {
		v := *l.MinDepth
		out.MinDepth = &v
	}
	if l.MaxDepth != nil {
		v := *l.MaxDepth
		out.MaxDepth = &v
	}
	out.ExcludeFiles = cloneStrings(l.ExcludeFiles)
	out.ExcludeDirs = cloneStrings(l.ExcludeDirs)
	out.SystemExcludeFiles = cloneStrings(l.SystemExcludeFiles)
	out.SystemExcludeDirs = cloneStrings(l.SystemExcludeDirs)
	out.Filter = cloneStrings(l.Filter)
	out.FilterDirs = cloneStrings(l.FilterDirs)
	out.Extra = l.Extra.Clone()
	return out
}

// Filter is a named, optionally negated matcher.
type Filter struct {
	ID      string
	Type    string
	Negated bool
	Config  Params
	// Scalar is set when a type with no shorthand key was written as
	// `type: value`; the value is then held under the "value" key.
	Scalar bool
}

// Action is a named operation applied to matching entries.
type Action struct {
	ID     string
	Type   string
	Config Params
	// Scalar has the same meaning as Filter.Scalar.
	Scalar bool
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
