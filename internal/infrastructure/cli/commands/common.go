package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/organize-desk/internal/app"
	"github.com/doeshing/organize-desk/internal/application/document"
	"github.com/doeshing/organize-desk/internal/domain"
)

// openSession loads path into a fresh editing session.
func openSession(ctx context.Context, container *app.Container, path string) (*document.Session, error) {
	session := container.NewSession()
	if err := session.Open(ctx, path); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return session, nil
}

// parsePosition turns a 1-based position argument into a 0-based index.
func parsePosition(arg string, count int, what string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s position must be a number, got %q", what, arg)
	}
	if n < 1 || n > count {
		if count == 0 {
			return 0, fmt.Errorf("%s position %d out of range (no %ss)", what, n, what)
		}
		return 0, fmt.Errorf("%s position %d out of range (1-%d)", what, n, count)
	}
	return n - 1, nil
}

// ruleAt resolves a rule position argument to the rule and its id.
func ruleAt(session *document.Session, arg string) (domain.Rule, error) {
	cfg := session.Config()
	i, err := parsePosition(arg, len(cfg.Rules), "rule")
	if err != nil {
		return domain.Rule{}, err
	}
	return cfg.Rules[i], nil
}

// parseAssignments turns key=value flags into ordered params. Values are
// parsed as YAML so that lists and numbers keep their type.
func parseAssignments(assignments []string) (domain.Params, error) {
	params := domain.NewParams()
	for _, a := range assignments {
		key, raw, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return domain.Params{}, fmt.Errorf("expected key=value, got %q", a)
		}
		params.Set(key, parseYAMLValue(raw))
	}
	return params, nil
}

// parseYAMLValue parses a string value as YAML, falling back to the literal string.
func parseYAMLValue(input string) interface{} {
	var parsed interface{}
	if err := yaml.Unmarshal([]byte(input), &parsed); err != nil || parsed == nil {
		return input
	}
	return parsed
}

func ruleName(r domain.Rule) string {
	if r.Name == "" {
		return "(unnamed)"
	}
	return r.Name
}
