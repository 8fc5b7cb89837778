// Package executor runs a source file through an external interpreter and
// captures what it printed.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/hupe1980/mlrun/internal/config"
	"github.com/hupe1980/mlrun/internal/logging"
	"github.com/hupe1980/mlrun/internal/source"
)

// Status classifies the outcome of one execution.
type Status int

const (
	// StatusLaunchFailed means the shell could not be started.
	StatusLaunchFailed Status = iota
	// StatusFailed means the pipeline ran and exited non-zero.
	StatusFailed
	// StatusSucceeded means the pipeline exited zero.
	StatusSucceeded
)

func (s Status) String() string {
	switch s {
	case StatusLaunchFailed:
		return "launch-failed"
	case StatusFailed:
		return "failed"
	case StatusSucceeded:
		return "succeeded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one execution.
type Result struct {
	Status Status
	// Name is the base name of the executed file.
	Name string
	// Output is the captured stdout. Only set on success.
	Output []byte
	// Stderr is kept for diagnostics and never rendered.
	Stderr   []byte
	ExitCode int
	Err      error
}

// Message returns the banner text for the result.
func (r Result) Message() string {
	switch r.Status {
	case StatusLaunchFailed:
		return fmt.Sprintf("Could not execute the file `%s`", r.Name)
	case StatusFailed:
		return fmt.Sprintf("An error occurred while executing `%s`", r.Name)
	default:
		return fmt.Sprintf("Successfully executed the file `%s`:", r.Name)
	}
}

// Options selects the shell pipeline used to run a file.
type Options struct {
	Shell       string
	Interpreter string
	// Directive is a format string with one %s for the absolute path.
	Directive string
}

// OptionsFromConfig copies the interpreter settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Shell:       cfg.Shell,
		Interpreter: cfg.Interpreter,
		Directive:   cfg.Directive,
	}
}

// Executor runs files through "<shell> -c <pipeline>".
type Executor struct {
	opts Options
}

// New creates an Executor.
func New(opts Options) *Executor {
	return &Executor{opts: opts}
}

// Command returns the shell pipeline that feeds the directive for path to
// the interpreter's stdin.
func (e *Executor) Command(path string) string {
	directive := fmt.Sprintf(e.opts.Directive, path)

	return fmt.Sprintf("printf '%%s\\n' %s | %s", shellquote.Join(directive), e.opts.Interpreter)
}

// Execute runs target synchronously. It never returns an error; every
// failure is reported through the Result.
func (e *Executor) Execute(ctx context.Context, target source.Target) Result {
	logger := logging.FromContext(ctx)
	command := e.Command(target.Path)

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, e.opts.Shell, "-c", command) //nolint:gosec // user-configured interpreter
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	res := Result{Name: target.Name, Stderr: stderr.Bytes(), Err: err}

	var exitErr *exec.ExitError

	switch {
	case err == nil:
		res.Status = StatusSucceeded
		res.Output = stdout.Bytes()
	case errors.As(err, &exitErr):
		res.Status = StatusFailed
		res.ExitCode = exitErr.ExitCode()
	default:
		res.Status = StatusLaunchFailed
		res.ExitCode = -1
	}

	logger.Debug("executed source file",
		slog.String("file", target.Path),
		slog.String("shell", e.opts.Shell),
		slog.String("command", command),
		slog.String("status", res.Status.String()),
		slog.Int("exitCode", res.ExitCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if res.Status != StatusSucceeded {
		logger.Debug("interpreter diagnostics",
			slog.String("file", target.Name),
			slog.String("stderr", stderr.String()),
			slog.Any("error", err),
		)
	}

	return res
}
