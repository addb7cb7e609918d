package domain

// Params is an insertion-ordered string-keyed map holding the configuration of
// a filter or action. Values are one of string, int, float64, bool, nil, []any
// or *Params. The zero value is an empty map ready for use.
type Params struct {
	keys   []string
	values map[string]any
}

// NewParams builds a Params from alternating key/value pairs.
func NewParams(kv ...any) Params {
	var p Params
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		p.Set(key, kv[i+1])
	}
	return p
}

// Set stores value under key, keeping the original position of existing keys.
func (p *Params) Set(key string, value any) {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value stored under key.
func (p Params) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Delete removes key, preserving the order of the remaining keys.
func (p *Params) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len reports the number of keys.
func (p Params) Len() int {
	return len(p.keys)
}

// Clone returns a deep copy; nested sequences and mappings are copied too.
func (p Params) Clone() Params {
	var out Params
	for _, k := range p.keys {
		out.Set(k, cloneValue(p.values[k]))
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case *Params:
		if t == nil {
			return t
		}
		c := t.Clone()
		return &c
	case Params:
		return t.Clone()
	default:
		return v
	}
}
