// Package runner performs one execute-and-render pass over a source file.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hupe1980/mlrun/internal/executor"
	"github.com/hupe1980/mlrun/internal/logging"
	"github.com/hupe1980/mlrun/internal/render"
	"github.com/hupe1980/mlrun/internal/source"
)

// Executor runs a source file and reports the outcome.
type Executor interface {
	Execute(ctx context.Context, target source.Target) executor.Result
}

// Runner binds a target to an executor and a renderer.
type Runner struct {
	target   source.Target
	exec     Executor
	renderer render.Renderer
}

// New creates a Runner.
func New(target source.Target, exec Executor, renderer render.Renderer) *Runner {
	return &Runner{target: target, exec: exec, renderer: renderer}
}

// Run executes the target and redraws the screen. Execution failures are
// rendered, not returned; only a failing renderer produces an error. A pass
// cut short by ctx leaves the screen untouched.
func (r *Runner) Run(ctx context.Context) error {
	res := r.exec.Execute(ctx, r.target)

	if ctx.Err() != nil {
		logging.FromContext(ctx).Debug("pass interrupted",
			slog.String("file", r.target.Name),
			slog.String("status", res.Status.String()),
		)

		return nil
	}

	if err := render.Show(r.renderer, res); err != nil {
		return fmt.Errorf("rendering result for %s: %w", r.target.Name, err)
	}

	logging.FromContext(ctx).Debug("pass complete",
		slog.String("file", r.target.Name),
		slog.String("status", res.Status.String()),
	)

	return nil
}
