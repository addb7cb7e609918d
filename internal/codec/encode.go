// Package codec converts between organize YAML documents and the in-memory
// domain model. Encode, Decode and Validate are pure and safe for concurrent use.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
)

// NegationPrefix marks a negated filter type.
const NegationPrefix = "not "

// Encode renders cfg in canonical form: the tersest spelling organize accepts
// for every rule, location, filter and action.
func Encode(cfg domain.Config) (string, error) {
	rules := sequenceNode()
	for i, rule := range cfg.Rules {
		node, err := encodeRule(rule)
		if err != nil {
			return "", fmt.Errorf("rule %d: %w", i+1, err)
		}
		rules.Content = append(rules.Content, node)
	}
	root := mappingNode()
	addPair(root, "rules", rules)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

func encodeRule(rule domain.Rule) (*yaml.Node, error) {
	m := mappingNode()
	if rule.Name != "" {
		addPair(m, "name", stringNode(rule.Name))
	}
	if !rule.Enabled {
		addPair(m, "enabled", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "false"})
	}
	if t := rule.EffectiveTargets(); t != domain.TargetFiles {
		addPair(m, "targets", stringNode(string(t)))
	}

	locations, err := encodeLocations(rule.Locations)
	if err != nil {
		return nil, err
	}
	addPair(m, "locations", locations)

	if rule.Subfolders {
		addPair(m, "subfolders", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if mode := rule.EffectiveFilterMode(); mode != domain.FilterModeAll {
		addPair(m, "filter_mode", stringNode(string(mode)))
	}

	if len(rule.Filters) > 0 {
		filters := sequenceNode()
		for i, f := range rule.Filters {
			node, err := encodeEntry(domain.KindFilter, f.Type, f.Negated, f.Scalar, f.Config)
			if err != nil {
				return nil, fmt.Errorf("filter %d (%s): %w", i+1, f.Type, err)
			}
			filters.Content = append(filters.Content, node)
		}
		addPair(m, "filters", filters)
	}

	actions := sequenceNode()
	for i, a := range rule.Actions {
		node, err := encodeEntry(domain.KindAction, a.Type, false, a.Scalar, a.Config)
		if err != nil {
			return nil, fmt.Errorf("action %d (%s): %w", i+1, a.Type, err)
		}
		actions.Content = append(actions.Content, node)
	}
	addPair(m, "actions", actions)

	if len(rule.Tags) > 0 {
		addPair(m, "tags", stringsNode(rule.Tags))
	}
	if err := appendExtra(m, rule.Extra); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeLocations(locs []domain.Location) (*yaml.Node, error) {
	if len(locs) == 1 && locs[0].IsSimple() {
		return stringNode(locs[0].Path), nil
	}
	seq := sequenceNode()
	for i, loc := range locs {
		node, err := encodeLocation(loc)
		if err != nil {
			return nil, fmt.Errorf("location %d: %w", i+1, err)
		}
		seq.Content = append(seq.Content, node)
	}
	return seq, nil
}

func encodeLocation(loc domain.Location) (*yaml.Node, error) {
	if loc.IsSimple() {
		return stringNode(loc.Path), nil
	}
	m := mappingNode()
	addPair(m, "path", stringNode(loc.Path))
	if loc.MinDepth != nil {
		addPair(m, "min_depth", intNode(*loc.MinDepth))
	}
	if loc.MaxDepth != nil {
		addPair(m, "max_depth", intNode(*loc.MaxDepth))
	}
	if loc.Search == domain.SearchBreadth {
		addPair(m, "search", stringNode(string(loc.Search)))
	}
	if len(loc.ExcludeFiles) > 0 {
		addPair(m, "exclude_files", stringsNode(loc.ExcludeFiles))
	}
	if len(loc.ExcludeDirs) > 0 {
		addPair(m, "exclude_dirs", stringsNode(loc.ExcludeDirs))
	}
	if loc.SystemExcludeFiles != nil {
		addPair(m, "system_exclude_files", stringsNode(loc.SystemExcludeFiles))
	}
	if loc.SystemExcludeDirs != nil {
		addPair(m, "system_exclude_dirs", stringsNode(loc.SystemExcludeDirs))
	}
	if len(loc.Filter) > 0 {
		addPair(m, "filter", stringsNode(loc.Filter))
	}
	if len(loc.FilterDirs) > 0 {
		addPair(m, "filter_dirs", stringsNode(loc.FilterDirs))
	}
	if loc.IgnoreErrors {
		addPair(m, "ignore_errors", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if err := appendExtra(m, loc.Extra); err != nil {
		return nil, err
	}
	return m, nil
}

// encodeEntry applies the shorthand collapse rule to one filter or action.
func encodeEntry(kind domain.DefinitionKind, typ string, negated, scalar bool, cfg domain.Params) (*yaml.Node, error) {
	name := typ
	if negated {
		name = NegationPrefix + typ
	}

	var keys []string
	for _, key := range cfg.Keys() {
		if v, _ := cfg.Get(key); meaningful(v) {
			keys = append(keys, key)
		}
	}

	if len(keys) == 0 {
		return stringNode(name), nil
	}

	m := mappingNode()
	if len(keys) == 1 {
		if sh, ok := collapsible(kind, typ, keys[0], scalar); ok {
			v, _ := cfg.Get(keys[0])
			if sh.set {
				v = unwrapSingle(v)
			}
			node, err := valueNode(v)
			if err != nil {
				return nil, err
			}
			addPair(m, name, node)
			return m, nil
		}
	}

	inner := mappingNode()
	for _, key := range keys {
		v, _ := cfg.Get(key)
		node, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		addPair(inner, key, node)
	}
	addPair(m, name, inner)
	return m, nil
}

func unwrapSingle(v any) any {
	switch t := v.(type) {
	case []any:
		if len(t) == 1 {
			return t[0]
		}
	case []string:
		if len(t) == 1 {
			return t[0]
		}
	}
	return v
}

func appendExtra(m *yaml.Node, extra domain.Params) error {
	for _, key := range extra.Keys() {
		v, _ := extra.Get(key)
		node, err := valueNode(v)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		addPair(m, key, node)
	}
	return nil
}

func intNode(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: fmt.Sprint(v)}
}

// splitNegation strips the negation prefix from a filter key. The prefix is
// case sensitive; the remainder is trimmed.
func splitNegation(name string) (string, bool) {
	if !strings.HasPrefix(name, NegationPrefix) {
		return name, false
	}
	return strings.TrimSpace(name[len(NegationPrefix):]), true
}
