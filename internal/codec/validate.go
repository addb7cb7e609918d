package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/domain"
)

// Validation messages, in the order the checks run.
const (
	msgSyntax        = "YAML syntax error: %v"
	msgEmpty         = "Config is empty"
	msgMissingRules  = `Config must have a "rules" key`
	msgRulesNotList  = `"rules" must be a list`
	msgMissingLocs   = `Rule %d: Missing "locations"`
	msgMissingAction = `Rule %d: Missing "actions"`
	msgInternal      = "Validation error: %v"
)

// Validate runs the structural checks an editor shows inline. It never
// panics: syntax and top-level shape problems short-circuit with a single
// message, per-rule problems are reported for every rule (1-indexed).
func Validate(text string) (result domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = invalid(fmt.Sprintf(msgInternal, r))
		}
	}()

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return invalid(fmt.Sprintf(msgSyntax, err))
	}

	root := documentRoot(&doc)
	if root == nil {
		return invalid(msgEmpty)
	}
	if root.Kind != yaml.MappingNode {
		return invalid(msgMissingRules)
	}
	rules := lookup(root, "rules")
	if rules == nil {
		return invalid(msgMissingRules)
	}
	rules = resolve(rules)
	if rules.Kind != yaml.SequenceNode {
		return invalid(msgRulesNotList)
	}

	errs := []string{}
	for i, n := range rules.Content {
		rule := resolve(n)
		if !present(rule, "locations") {
			errs = append(errs, fmt.Sprintf(msgMissingLocs, i+1))
		}
		if !present(rule, "actions") {
			errs = append(errs, fmt.Sprintf(msgMissingAction, i+1))
		}
	}
	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// present treats absent, null and empty-string values as missing. An empty
// list is present.
func present(rule *yaml.Node, key string) bool {
	if rule == nil || rule.Kind != yaml.MappingNode {
		return false
	}
	v := lookup(rule, key)
	if isNull(v) {
		return false
	}
	v = resolve(v)
	return !(v.Kind == yaml.ScalarNode && v.Value == "" && v.ShortTag() == "!!str")
}

func invalid(msg string) domain.ValidationResult {
	return domain.ValidationResult{Valid: false, Errors: []string{msg}}
}
