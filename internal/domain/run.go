package domain

// Stream identifies the pipe an output chunk was read from.
type Stream string

const (
	StreamStdout Stream = "stdout"
	StreamStderr Stream = "stderr"
)

// RunOptions are the optional flags forwarded to organize.
type RunOptions struct {
	// ConfigPath, when set, is passed to organize as a file argument instead
	// of piping the document on stdin.
	ConfigPath string
	WorkingDir string
	Tags       string
	SkipTags   string
	Format     string
}

// RunResult is what the external process returned.
type RunResult struct {
	ExitCode   int
	Stdout     string
	Stderr     string
	DurationMS int64
}

// InstallStatus describes whether organize can be launched.
type InstallStatus struct {
	Installed bool
	Version   string
	Error     string
}

// ErrorPrefix marks stderr chunks in the output log.
const ErrorPrefix = "[ERROR] "

// OutputLog is the ordered console of a run. Chunks are stored as received.
type OutputLog struct {
	lines []string
}

// Append adds a chunk; stderr chunks are prefixed with ErrorPrefix.
func (o *OutputLog) Append(chunk string, stream Stream) {
	if stream == StreamStderr {
		chunk = ErrorPrefix + chunk
	}
	o.lines = append(o.lines, chunk)
}

// Lines returns a copy of the chunks in arrival order.
func (o *OutputLog) Lines() []string {
	out := make([]string, len(o.lines))
	copy(out, o.lines)
	return out
}

// Clear drops all chunks.
func (o *OutputLog) Clear() {
	o.lines = nil
}
