// Package cli implements the cobra command tree for mlrun.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/mlrun/internal/config"
	"github.com/hupe1980/mlrun/internal/logging"
	"github.com/hupe1980/mlrun/internal/source"
)

// liveArg switches on live mode when it is exactly the second positional
// argument.
const liveArg = "--live"

// ExitError wraps an error with a specific process exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}

	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute builds the command tree, runs it, and returns the exit code.
func Execute() int {
	return run(NewRootCommand())
}

// run executes cmd and reports a failure as a single "Error: ..." line on
// the command's stderr.
func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return 1
}

// NewRootCommand constructs the top-level cobra.Command with all
// subcommands attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "mlrun <file.ml> [--live]",
		Short: "Run an OCaml source file and show the result",
		Long: `mlrun feeds an OCaml source file to the ocaml toplevel and draws the
result on a cleared terminal screen: a green success banner followed by
everything the program printed, or a red error banner when the file could
not be run.

With --live as the second argument, mlrun stays in the foreground and redraws the screen every
time the file is written, until interrupted.`,
		Example: `  mlrun hello.ml
  mlrun hello.ml --live
  mlrun --interpreter utop --debounce 200ms hello.ml --live

Options go before the file; everything after it is positional.`,
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeSourceFiles,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd, cfgFile)
			if err != nil {
				return &ExitError{Code: 2, Err: err}
			}

			logger := logging.SetupWithWriter(cfg, cmd.ErrOrStderr())

			ctx := cmd.Context()
			ctx = config.NewContext(ctx, cfg)
			ctx = logging.NewContext(ctx, logger)
			cmd.SetContext(ctx)

			logger.Debug("configuration loaded",
				slog.String("configFile", cfg.ConfigFile),
				slog.String("interpreter", cfg.Interpreter),
				slog.String("shell", cfg.Shell),
				slog.String("logLevel", cfg.LogLevel),
			)

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSource(cmd.Context(), cmd, args)
		},
	}

	// Global persistent flags.
	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .mlrun.yaml)")
	pf.String("log-level", config.LogLevelInfo, "log level: debug, info, warn, error")
	pf.String("log-format", config.LogFormatText, "log format: text, json")
	pf.Bool("no-color", false, "disable colored output")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")

	f := cmd.Flags()
	f.SetInterspersed(false)
	f.String("interpreter", config.DefaultInterpreter, "interpreter that reads the directive on stdin")
	f.String("shell", config.DefaultShell, "shell used to run the interpreter pipeline")
	f.String("directive", config.DefaultDirective, "directive sent to the interpreter (%s is the file path)")
	f.String("extension", config.DefaultExtension, "required source file extension")
	f.Duration("debounce", 0, "coalesce modifications within this interval in live mode (0 disables)")

	// Flag parsing errors return exit code 2. A leading --live sits where the
	// file belongs, so it is reported as a bad path instead.
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		if err.Error() == "unknown flag: "+liveArg {
			return &ExitError{Code: 1, Err: source.ErrBadPath}
		}

		return &ExitError{Code: 2, Err: err}
	})

	cmd.AddCommand(
		newVersionCommand(),
		newCompletionCommand(),
	)

	return cmd
}

// completeSourceFiles offers only files carrying the configured extension
// for the single positional argument.
func completeSourceFiles(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ext, err := cmd.Flags().GetString("extension")
	if err != nil || ext == "" {
		ext = config.DefaultExtension
	}

	return []string{strings.TrimPrefix(ext, ".")}, cobra.ShellCompDirectiveFilterFileExt
}
