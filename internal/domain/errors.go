package domain

import (
	"errors"
	"fmt"
)

// SyntaxError reports text that is not valid YAML.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("yaml syntax error: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// SchemaError reports valid YAML that does not have the shape of a config.
// Path points at the offending node, e.g. "rules[2].filters[0]".
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Msg
	}
	return fmt.Sprintf("invalid config: %s: %s", e.Path, e.Msg)
}

// UnknownDefinitionError is raised at the UI boundary when a decoded filter or
// action type has no catalog entry. The codec itself never returns it.
type UnknownDefinitionError struct {
	Kind DefinitionKind
	Name string
}

func (e *UnknownDefinitionError) Error() string {
	return fmt.Sprintf("unknown %s type %q", e.Kind, e.Name)
}

// ErrRunLogNotFound is returned when a run log id is unknown.
var ErrRunLogNotFound = errors.New("run log not found")
