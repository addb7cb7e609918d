package domain

import "fmt"

// FindRule returns a pointer to the rule with the given id.
func (c *Config) FindRule(id string) (*Rule, bool) {
	if i := c.RuleIndex(id); i >= 0 {
		return &c.Rules[i], true
	}
	return nil, false
}

// AddRule appends a rule at the end of the config.
func (c *Config) AddRule(rule Rule) {
	c.Rules = append(c.Rules, rule)
}

// ReplaceRule swaps the rule with the given id for rule.
func (c *Config) ReplaceRule(id string, rule Rule) error {
	i := c.RuleIndex(id)
	if i < 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	c.Rules[i] = rule
	return nil
}

// RemoveRule deletes the rule with the given id.
func (c *Config) RemoveRule(id string) error {
	i := c.RuleIndex(id)
	if i < 0 {
		return fmt.Errorf("rule %s not found", id)
	}
	c.Rules = append(c.Rules[:i], c.Rules[i+1:]...)
	return nil
}

// MoveRule moves the rule at position from to position to.
func (c *Config) MoveRule(from, to int) error {
	return moveItem(c.Rules, from, to)
}

// InsertRule places rule at position i, shifting later rules down.
func (c *Config) InsertRule(i int, rule Rule) {
	if i < 0 || i > len(c.Rules) {
		i = len(c.Rules)
	}
	c.Rules = append(c.Rules, Rule{})
	copy(c.Rules[i+1:], c.Rules[i:])
	c.Rules[i] = rule
}

// AddFilter appends a filter; later filters may use placeholders of earlier ones,
// so filters are never reordered implicitly.
func (r *Rule) AddFilter(f Filter) {
	r.Filters = append(r.Filters, f)
}

// RemoveFilter deletes the filter with the given id.
func (r *Rule) RemoveFilter(id string) error {
	for i, f := range r.Filters {
		if f.ID == id {
			r.Filters = append(r.Filters[:i], r.Filters[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("filter %s not found", id)
}

// ToggleNegation flips the negated flag of a filter and returns the new value.
func (r *Rule) ToggleNegation(id string) (bool, error) {
	for i := range r.Filters {
		if r.Filters[i].ID == id {
			r.Filters[i].Negated = !r.Filters[i].Negated
			return r.Filters[i].Negated, nil
		}
	}
	return false, fmt.Errorf("filter %s not found", id)
}

// MoveFilter reorders filters.
func (r *Rule) MoveFilter(from, to int) error {
	return moveItem(r.Filters, from, to)
}

// AddAction appends an action.
func (r *Rule) AddAction(a Action) {
	r.Actions = append(r.Actions, a)
}

// RemoveAction deletes the action with the given id.
func (r *Rule) RemoveAction(id string) error {
	for i, a := range r.Actions {
		if a.ID == id {
			r.Actions = append(r.Actions[:i], r.Actions[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("action %s not found", id)
}

// MoveAction reorders actions.
func (r *Rule) MoveAction(from, to int) error {
	return moveItem(r.Actions, from, to)
}

// AddLocation appends a location.
func (r *Rule) AddLocation(l Location) {
	r.Locations = append(r.Locations, l)
}

// RemoveLocation deletes the location at index i. A rule always keeps at least
// one location.
func (r *Rule) RemoveLocation(i int) error {
	if i < 0 || i >= len(r.Locations) {
		return fmt.Errorf("location index %d out of range", i)
	}
	if len(r.Locations) == 1 {
		return fmt.Errorf("a rule needs at least one location")
	}
	r.Locations = append(r.Locations[:i], r.Locations[i+1:]...)
	return nil
}

// AddTag adds tag unless it is already present.
func (r *Rule) AddTag(tag string) {
	for _, t := range r.Tags {
		if t == tag {
			return
		}
	}
	r.Tags = append(r.Tags, tag)
}

// HasActionType reports whether any action of the rule has one of the types.
func (r Rule) HasActionType(types ...string) bool {
	for _, a := range r.Actions {
		for _, t := range types {
			if a.Type == t {
				return true
			}
		}
	}
	return false
}

func moveItem[T any](items []T, from, to int) error {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return fmt.Errorf("move %d -> %d out of range (len %d)", from, to, len(items))
	}
	if from == to {
		return nil
	}
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
	return nil
}
