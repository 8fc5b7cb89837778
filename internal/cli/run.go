package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/mlrun/internal/config"
	"github.com/hupe1980/mlrun/internal/executor"
	"github.com/hupe1980/mlrun/internal/logging"
	"github.com/hupe1980/mlrun/internal/render"
	"github.com/hupe1980/mlrun/internal/runner"
	"github.com/hupe1980/mlrun/internal/source"
	"github.com/hupe1980/mlrun/internal/watch"
)

// runSource resolves the path argument, runs one pass and, when the second
// argument is --live, keeps re-running it on every modification until
// interrupted.
func runSource(ctx context.Context, cmd *cobra.Command, args []string) error {
	cfg := config.FromContext(ctx)
	logger := logging.FromContext(ctx)

	target, err := source.Resolve(args, cfg.Extension)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	live := len(args) > 1 && args[1] == liveArg
	if len(args) > 1 && !live {
		logger.Debug("ignoring extra arguments", slog.Any("args", args[1:]))
	}

	r := runner.New(
		target,
		executor.New(executor.OptionsFromConfig(cfg)),
		render.NewTerminal(cmd.OutOrStdout(), cfg.NoColor),
	)

	if err := r.Run(ctx); err != nil {
		return err
	}

	if !live {
		return nil
	}

	opts := watch.DefaultOptions()
	opts.Path = target.Path
	opts.Debounce = cfg.Debounce
	opts.Logger = logger

	if err := watch.Run(ctx, opts, r.Run); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	return nil
}
