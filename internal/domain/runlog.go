package domain

import "time"

// Verb is the organize sub-command handed to the external process.
type Verb string

const (
	VerbSim Verb = "sim"
	VerbRun Verb = "run"
)

// Valid reports whether v is one of the supported verbs.
func (v Verb) Valid() bool {
	return v == VerbSim || v == VerbRun
}

// RunLog is an immutable record of one simulate or run invocation.
type RunLog struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Command       Verb      `json:"command"`
	ConfigName    string    `json:"config_name"`
	ConfigContent string    `json:"config_content"`
	Output        []string  `json:"output"`
	ExitCode      int       `json:"exit_code"`
	DurationMS    int64     `json:"duration_ms"`
	Success       bool      `json:"success"`
}
