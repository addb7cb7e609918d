package codec

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
)

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode}
}

// stringNode builds a !!str scalar; the emitter quotes it when the plain form
// would resolve to another type.
func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, stringNode(key), value)
}

func stringsNode(items []string) *yaml.Node {
	seq := sequenceNode()
	for _, s := range items {
		seq.Content = append(seq.Content, stringNode(s))
	}
	return seq
}

func paramsNode(p domain.Params) (*yaml.Node, error) {
	m := mappingNode()
	for _, key := range p.Keys() {
		v, _ := p.Get(key)
		node, err := valueNode(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		addPair(m, key, node)
	}
	return m, nil
}

func valueNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		return stringNode(t), nil
	case float64:
		return floatNode(t), nil
	case []string:
		return stringsNode(t), nil
	case []any:
		seq := sequenceNode()
		for _, item := range t {
			node, err := valueNode(item)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, node)
		}
		return seq, nil
	case *domain.Params:
		if t == nil {
			return valueNode(nil)
		}
		return paramsNode(*t)
	case domain.Params:
		return paramsNode(t)
	}
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return node, nil
}

// floatNode keeps whole floats such as 1.0 from reading back as ints.
func floatNode(f float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}
}

// meaningful reports whether a config value is worth writing out. false and 0
// are meaningful.
func meaningful(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	case *domain.Params:
		return t != nil
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan:
		return false
	}
	return true
}

// resolve follows aliases to the node they point at.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	n = resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// documentRoot returns the top-level value of a parsed document, or nil for
// empty, comment-only and null documents.
func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == 0 {
		return nil
	}
	n := doc
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		n = n.Content[0]
	}
	if isNull(n) {
		return nil
	}
	return resolve(n)
}

// lookup finds the value of key in a mapping node.
func lookup(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
