package codec

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
)

// Decode parses an organize document. It fails with *domain.SyntaxError when
// the text is not YAML and *domain.SchemaError when the YAML does not have the
// shape of a config. Empty and comment-only documents decode to a Config with
// no rules. Identifiers are freshly generated on every call.
func Decode(text string) (domain.Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return domain.Config{}, &domain.SyntaxError{Err: err}
	}

	root := documentRoot(&doc)
	if root == nil {
		return domain.Config{Rules: []domain.Rule{}}, nil
	}
	if root.Kind != yaml.MappingNode {
		return domain.Config{}, &domain.SchemaError{Msg: "document must be a mapping"}
	}

	rulesNode := lookup(root, "rules")
	if rulesNode == nil {
		return domain.Config{}, &domain.SchemaError{Msg: `missing "rules" key`}
	}
	rulesNode = resolve(rulesNode)
	if rulesNode.Kind != yaml.SequenceNode {
		return domain.Config{}, &domain.SchemaError{Path: "rules", Msg: "must be a list"}
	}

	cfg := domain.Config{Rules: make([]domain.Rule, 0, len(rulesNode.Content))}
	for i, n := range rulesNode.Content {
		rule, err := decodeRule(n, fmt.Sprintf("rules[%d]", i))
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Rules = append(cfg.Rules, rule)
	}
	return cfg, nil
}

func newID() string {
	return uuid.NewString()
}

func decodeRule(n *yaml.Node, path string) (domain.Rule, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return domain.Rule{}, &domain.SchemaError{Path: path, Msg: "rule must be a mapping"}
	}

	rule := domain.Rule{
		ID:         newID(),
		Enabled:    true,
		Targets:    domain.TargetFiles,
		FilterMode: domain.FilterModeAll,
		Locations:  []domain.Location{},
		Filters:    []domain.Filter{},
		Actions:    []domain.Action{},
		Tags:       []string{},
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := resolve(n.Content[i+1])
		keyPath := path + "." + key
		var err error

		switch key {
		case "name":
			rule.Name, err = decodeString(value, keyPath)
		case "enabled":
			rule.Enabled, err = decodeBool(value, keyPath, true)
		case "targets":
			var s string
			if s, err = decodeString(value, keyPath); err == nil && s != "" {
				rule.Targets = domain.Targets(s)
			}
		case "locations":
			rule.Locations, err = decodeLocations(value, keyPath)
		case "subfolders":
			rule.Subfolders, err = decodeBool(value, keyPath, false)
		case "filter_mode":
			var s string
			if s, err = decodeString(value, keyPath); err == nil && s != "" {
				rule.FilterMode = domain.FilterMode(s)
			}
		case "filters":
			rule.Filters, err = decodeFilters(value, keyPath)
		case "actions":
			rule.Actions, err = decodeActions(value, keyPath)
		case "tags":
			rule.Tags, err = decodeStrings(value, keyPath)
		default:
			var v any
			if v, err = decodeValue(value); err == nil {
				rule.Extra.Set(key, v)
			}
		}
		if err != nil {
			return domain.Rule{}, err
		}
	}
	return rule, nil
}

func decodeLocations(n *yaml.Node, path string) ([]domain.Location, error) {
	locs := []domain.Location{}
	switch {
	case isNull(n):
		return locs, nil
	case n.Kind == yaml.SequenceNode:
		for i, item := range n.Content {
			loc, err := decodeLocation(resolve(item), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			locs = append(locs, loc)
		}
		return locs, nil
	default:
		loc, err := decodeLocation(n, path)
		if err != nil {
			return nil, err
		}
		return append(locs, loc), nil
	}
}

func decodeLocation(n *yaml.Node, path string) (domain.Location, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return domain.Location{}, &domain.SchemaError{Path: path, Msg: "location must not be null"}
		}
		return domain.Location{Path: n.Value}, nil
	case yaml.MappingNode:
	default:
		return domain.Location{}, &domain.SchemaError{Path: path, Msg: "location must be a path or a mapping"}
	}

	var loc domain.Location
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		value := resolve(n.Content[i+1])
		keyPath := path + "." + key
		var err error

		switch key {
		case "path":
			loc.Path, err = decodeString(value, keyPath)
		case "min_depth":
			loc.MinDepth, err = decodeDepth(value, keyPath)
		case "max_depth":
			loc.MaxDepth, err = decodeDepth(value, keyPath)
		case "search":
			var s string
			if s, err = decodeString(value, keyPath); err == nil {
				loc.Search = domain.SearchStrategy(s)
			}
		case "exclude_files":
			loc.ExcludeFiles, err = decodeStrings(value, keyPath)
		case "exclude_dirs":
			loc.ExcludeDirs, err = decodeStrings(value, keyPath)
		case "system_exclude_files":
			loc.SystemExcludeFiles, err = decodeStrings(value, keyPath)
		case "system_exclude_dirs":
			loc.SystemExcludeDirs, err = decodeStrings(value, keyPath)
		case "filter":
			loc.Filter, err = decodeStrings(value, keyPath)
		case "filter_dirs":
			loc.FilterDirs, err = decodeStrings(value, keyPath)
		case "ignore_errors":
			loc.IgnoreErrors, err = decodeBool(value, keyPath, false)
		default:
			var v any
			if v, err = decodeValue(value); err == nil {
				loc.Extra.Set(key, v)
			}
		}
		if err != nil {
			return domain.Location{}, err
		}
	}
	return loc, nil
}

func decodeFilters(n *yaml.Node, path string) ([]domain.Filter, error) {
	items, err := entryNodes(n, path)
	if err != nil {
		return nil, err
	}
	filters := make([]domain.Filter, 0, len(items))
	for i, item := range items {
		e, err := decodeEntry(domain.KindFilter, item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		filters = append(filters, domain.Filter{ID: newID(), Type: e.typ, Negated: e.negated, Config: e.cfg, Scalar: e.scalar})
	}
	return filters, nil
}

func decodeActions(n *yaml.Node, path string) ([]domain.Action, error) {
	items, err := entryNodes(n, path)
	if err != nil {
		return nil, err
	}
	actions := make([]domain.Action, 0, len(items))
	for i, item := range items {
		e, err := decodeEntry(domain.KindAction, item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		actions = append(actions, domain.Action{ID: newID(), Type: e.typ, Config: e.cfg, Scalar: e.scalar})
	}
	return actions, nil
}

func entryNodes(n *yaml.Node, path string) ([]*yaml.Node, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.SequenceNode {
		return nil, &domain.SchemaError{Path: path, Msg: "must be a list"}
	}
	return n.Content, nil
}

type entry struct {
	typ     string
	negated bool
	// scalar marks a value stored under ValueKey by the `type: value` spelling.
	scalar bool
	cfg    domain.Params
}

// decodeEntry reads one filter or action in any of its three spellings: a bare
// type name, `type: value` shorthand or `type: {key: value, ...}`.
func decodeEntry(kind domain.DefinitionKind, n *yaml.Node, path string) (entry, error) {
	n = resolve(n)

	var (
		name  string
		value *yaml.Node
	)
	switch {
	case n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str":
		name = n.Value
	case n.Kind == yaml.MappingNode && len(n.Content) == 2:
		name = n.Content[0].Value
		value = resolve(n.Content[1])
	case n.Kind == yaml.MappingNode:
		return entry{}, &domain.SchemaError{Path: path, Msg: fmt.Sprintf("%s must have exactly one type key", kind)}
	default:
		return entry{}, &domain.SchemaError{Path: path, Msg: fmt.Sprintf("%s must be a type name or a mapping", kind)}
	}

	e := entry{typ: name}
	if kind == domain.KindFilter {
		e.typ, e.negated = splitNegation(name)
	}
	if e.typ == "" {
		return entry{}, &domain.SchemaError{Path: path, Msg: fmt.Sprintf("%s type must not be empty", kind)}
	}

	switch {
	case isNull(value):
	case value.Kind == yaml.MappingNode:
		p, err := decodeParams(value)
		if err != nil {
			return entry{}, &domain.SchemaError{Path: path, Msg: err.Error()}
		}
		e.cfg = p
	default:
		v, err := decodeValue(value)
		if err != nil {
			return entry{}, &domain.SchemaError{Path: path, Msg: err.Error()}
		}
		sh, known := expansionKey(kind, e.typ)
		if _, isList := v.([]any); sh.set && !isList {
			v = []any{v}
		}
		e.cfg.Set(sh.key, v)
		e.scalar = !known
	}
	return e, nil
}

func decodeParams(n *yaml.Node) (domain.Params, error) {
	var p domain.Params
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := decodeValue(n.Content[i+1])
		if err != nil {
			return domain.Params{}, err
		}
		p.Set(n.Content[i].Value, v)
	}
	return p, nil
}

// decodeValue converts a node into the variant values held by Params.
func decodeValue(n *yaml.Node) (any, error) {
	n = resolve(n)
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		p, err := decodeParams(n)
		if err != nil {
			return nil, err
		}
		return &p, nil
	case yaml.ScalarNode:
		return decodeScalar(n), nil
	}
	return nil, fmt.Errorf("unsupported yaml node at line %d", n.Line)
}

func decodeScalar(n *yaml.Node) any {
	switch n.ShortTag() {
	case "!!null":
		return nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return b
		}
	case "!!int":
		var i int
		if err := n.Decode(&i); err == nil {
			return i
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return f
		}
	}
	return n.Value
}

func decodeString(n *yaml.Node, path string) (string, error) {
	if isNull(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", &domain.SchemaError{Path: path, Msg: "must be a string"}
	}
	return n.Value, nil
}

func decodeBool(n *yaml.Node, path string, fallback bool) (bool, error) {
	if isNull(n) {
		return fallback, nil
	}
	var b bool
	if n.Kind != yaml.ScalarNode || n.Decode(&b) != nil {
		return false, &domain.SchemaError{Path: path, Msg: "must be a boolean"}
	}
	return b, nil
}

func decodeDepth(n *yaml.Node, path string) (*int, error) {
	if isNull(n) {
		return nil, nil
	}
	var v int
	if n.Kind != yaml.ScalarNode || n.Decode(&v) != nil {
		return nil, &domain.SchemaError{Path: path, Msg: "must be an integer"}
	}
	return &v, nil
}

// decodeStrings accepts a single scalar or a list of scalars. An explicit
// empty list yields a non-nil empty slice.
func decodeStrings(n *yaml.Node, path string) ([]string, error) {
	if isNull(n) {
		return nil, nil
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return []string{n.Value}, nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for i, item := range n.Content {
			item = resolve(item)
			if item.Kind != yaml.ScalarNode {
				return nil, &domain.SchemaError{Path: fmt.Sprintf("%s[%d]", path, i), Msg: "must be a string"}
			}
			out = append(out, item.Value)
		}
		return out, nil
	}
	return nil, &domain.SchemaError{Path: path, Msg: "must be a string or a list of strings"}
}
