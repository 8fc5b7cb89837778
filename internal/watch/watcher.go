package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// RunFunc performs one pass. Errors are logged; they do not stop the loop.
type RunFunc func(ctx context.Context) error

// Options configures the watch behaviour.
type Options struct {
	// Path is the single file to watch. It is registered on its own, not
	// through its parent directory.
	Path string

	// Debounce is the quiet period before a pass. Zero runs one pass per
	// modify event.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger
}

// DefaultOptions returns watch options without debouncing.
func DefaultOptions() Options {
	return Options{Logger: slog.Default()}
}

// Run registers a watcher on opts.Path and blocks in Loop until ctx is
// cancelled or SIGINT/SIGTERM is received. It does not run an initial pass.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(opts.Path); err != nil {
		return fmt.Errorf("watching %s: %w", opts.Path, err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts.Logger.Debug("watching source file",
		slog.String("path", opts.Path),
		slog.Duration("debounce", opts.Debounce),
	)

	return Loop(sigCtx, watcher.Events, watcher.Errors, opts, runFn)
}

// Loop consumes events and errors until ctx is done or either channel is
// closed. Every modify event runs runFn once, synchronously; events that
// arrive meanwhile wait in the channel and are handled in order.
func Loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, opts Options, runFn RunFunc) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debouncer := NewDebouncer(opts.Debounce)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watcher stopped")
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}

			if !IsModify(event) {
				logger.Debug("ignoring event",
					slog.String("path", event.Name),
					slog.String("op", event.Op.String()),
				)

				continue
			}

			if debouncer.Enabled() {
				debouncer.Trigger()
				continue
			}

			doRun(ctx, logger, runFn, event.Name)

		case <-debouncer.C():
			doRun(ctx, logger, runFn, opts.Path)

		case watchErr, ok := <-errs:
			if !ok {
				return nil
			}

			logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

func doRun(ctx context.Context, logger *slog.Logger, runFn RunFunc, trigger string) {
	logger.Debug("file modified, re-running", slog.String("path", trigger))

	if err := runFn(ctx); err != nil {
		logger.Error("pass failed", slog.String("path", trigger), slog.String("error", err.Error()))
	}
}

// IsModify reports whether event changed the file's contents. Create,
// remove, rename and chmod events are not modifications.
func IsModify(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write)
}
