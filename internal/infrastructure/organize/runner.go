// Package organize launches the external organize engine through the
// configured Python interpreter.
package organize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/organize-desk/internal/domain"
	"github.com/doeshing/organize-desk/internal/pkg/filesystem"
	"github.com/doeshing/organize-desk/internal/ports"
)

const chunkSize = 4096

// Runner runs `python -m organize` as a child process.
type Runner struct {
	python       string
	probeTimeout time.Duration
	logger       ports.Logger
}

// NewRunner builds a runner; an empty interpreter defaults to python3.
func NewRunner(python string, logger ports.Logger) *Runner {
	if python == "" {
		python = "python3"
	}
	return &Runner{python: python, probeTimeout: domain.DefaultProbeTimeout, logger: logger}
}

// Python returns the interpreter used to launch organize.
func (r *Runner) Python() string {
	return r.python
}

// Args builds the organize argument list for a run.
func Args(verb domain.Verb, opts domain.RunOptions) []string {
	args := []string{"-m", "organize", string(verb)}
	if opts.ConfigPath != "" {
		args = append(args, opts.ConfigPath)
	} else {
		args = append(args, "--stdin")
	}
	if opts.WorkingDir != "" {
		args = append(args, "--working-dir", opts.WorkingDir)
	}
	if opts.Tags != "" {
		args = append(args, "--tags", opts.Tags)
	}
	if opts.SkipTags != "" {
		args = append(args, "--skip-tags", opts.SkipTags)
	}
	if opts.Format != "" {
		args = append(args, "--format", opts.Format)
	}
	return args
}

// Run implements ports.OrganizeRunner. Output is forwarded to sink chunk by
// chunk while the process runs; sink calls are serialized.
func (r *Runner) Run(ctx context.Context, verb domain.Verb, configText string, opts domain.RunOptions, sink ports.OutputSink) (domain.RunResult, error) {
	args := Args(verb, opts)
	c := exec.CommandContext(ctx, r.python, args...)
	c.Env = os.Environ()
	c.Dir = opts.WorkingDir
	if c.Dir == "" {
		c.Dir = filesystem.UserHomeDir()
	}
	if opts.ConfigPath == "" {
		c.Stdin = strings.NewReader(configText)
	}

	stdout, err := c.StdoutPipe()
	if err != nil {
		return spawnFailure(err), err
	}
	stderr, err := c.StderrPipe()
	if err != nil {
		return spawnFailure(err), err
	}

	r.debug("starting organize", map[string]interface{}{"python": r.python, "args": strings.Join(args, " "), "dir": c.Dir})
	start := time.Now()
	if err := c.Start(); err != nil {
		r.logError("failed to start organize", err)
		return spawnFailure(err), fmt.Errorf("failed to start %s: %w", r.python, err)
	}

	var (
		mu             sync.Mutex
		outBuf, errBuf strings.Builder
	)
	emit := func(chunk string, stream domain.Stream) {
		mu.Lock()
		defer mu.Unlock()
		if stream == domain.StreamStderr {
			errBuf.WriteString(chunk)
		} else {
			outBuf.WriteString(chunk)
		}
		if sink != nil {
			sink.Write(chunk, stream)
		}
	}

	var g errgroup.Group
	g.Go(func() error { return pump(stdout, domain.StreamStdout, emit) })
	g.Go(func() error { return pump(stderr, domain.StreamStderr, emit) })
	pumpErr := g.Wait()
	waitErr := c.Wait()

	result := domain.RunResult{
		Stdout:     outBuf.String(),
		Stderr:     errBuf.String(),
		DurationMS: time.Since(start).Milliseconds(),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(waitErr, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case waitErr != nil:
		result.ExitCode = -1
		r.logError("organize did not finish", waitErr)
	}
	if pumpErr != nil {
		r.logError("failed to read organize output", pumpErr)
	}
	r.debug("organize finished", map[string]interface{}{"exit_code": result.ExitCode, "duration_ms": result.DurationMS})
	return result, nil
}

func pump(rd io.Reader, stream domain.Stream, emit func(string, domain.Stream)) error {
	buf := make([]byte, chunkSize)
	for {
		n, err := rd.Read(buf)
		if n > 0 {
			emit(string(buf[:n]), stream)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func spawnFailure(err error) domain.RunResult {
	return domain.RunResult{ExitCode: -1, Stderr: err.Error()}
}

// CheckInstalled runs `organize --version`.
func (r *Runner) CheckInstalled(ctx context.Context) domain.InstallStatus {
	out, err := r.probe(ctx, "--version")
	if err != nil {
		return domain.InstallStatus{Installed: false, Error: err.Error()}
	}
	return domain.InstallStatus{Installed: true, Version: out}
}

// DefaultConfigPath runs `organize show --path`.
func (r *Runner) DefaultConfigPath(ctx context.Context) (string, error) {
	return r.probe(ctx, "show", "--path")
}

// ListConfigs runs `organize list` and returns its raw output.
func (r *Runner) ListConfigs(ctx context.Context) (string, error) {
	return r.probe(ctx, "list")
}

func (r *Runner) probe(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.probeTimeout)
	defer cancel()
	c := exec.CommandContext(ctx, r.python, append([]string{"-m", "organize"}, args...)...)
	out, err := c.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (r *Runner) debug(msg string, fields map[string]interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, fields)
	}
}

func (r *Runner) logError(msg string, err error) {
	if r.logger != nil {
		r.logger.Error(msg, err, map[string]interface{}{"python": r.python})
	}
}

var _ ports.OrganizeRunner = (*Runner)(nil)
