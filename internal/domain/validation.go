package domain

// ValidationResult is the outcome of a structural check on raw YAML text.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Severity grades an inspection diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one finding about a decoded model, addressed by rule index
// and the filter/action/location position inside it.
type Diagnostic struct {
	Severity Severity
	Rule     int
	Path     string
	Message  string
	Err      error
}
