// Package config provides configuration management for mlrun.
//
// Configuration is loaded from four sources with the following precedence
// (highest to lowest):
//  1. CLI flags
//  2. Environment variables (MLRUN_ prefix)
//  3. Config file (.mlrun.yaml)
//  4. Built-in defaults
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Supported log levels.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Supported log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Interpreter defaults.
const (
	DefaultShell       = "bash"
	DefaultInterpreter = "ocaml"
	DefaultDirective   = `#use "%s";;`
	DefaultExtension   = ".ml"
)

// Config represents the global configuration for mlrun.
type Config struct {
	// LogLevel controls the verbosity of log output.
	// Valid values: debug, info, warn, error.
	LogLevel string `mapstructure:"log-level" json:"logLevel"`

	// LogFormat controls the format of log output.
	// Valid values: text, json.
	LogFormat string `mapstructure:"log-format" json:"logFormat"`

	// NoColor disables colored output.
	NoColor bool `mapstructure:"no-color" json:"noColor"`

	// Quiet suppresses all log output below error level.
	Quiet bool `mapstructure:"quiet" json:"quiet"`

	// Shell runs the interpreter pipeline via "<shell> -c".
	Shell string `mapstructure:"shell" json:"shell"`

	// Interpreter is the program that reads the directive on stdin.
	Interpreter string `mapstructure:"interpreter" json:"interpreter"`

	// Directive is a format string with a single %s verb that receives the
	// absolute source path.
	Directive string `mapstructure:"directive" json:"directive"`

	// Extension is the suffix every source path must carry.
	Extension string `mapstructure:"extension" json:"extension"`

	// Debounce coalesces modify events in live mode. Zero disables it.
	Debounce time.Duration `mapstructure:"debounce" json:"debounce"`

	// ConfigFile is the resolved path to the config file used.
	// Set after Load() — not read from config itself.
	ConfigFile string `mapstructure:"-" json:"-"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		LogLevel:    LogLevelInfo,
		LogFormat:   LogFormatText,
		NoColor:     false,
		Quiet:       false,
		Shell:       DefaultShell,
		Interpreter: DefaultInterpreter,
		Directive:   DefaultDirective,
		Extension:   DefaultExtension,
	}
}

// Validate checks that all config values are valid.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		// valid
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
		// valid
	default:
		return fmt.Errorf("invalid log format %q: must be one of text, json", c.LogFormat)
	}

	if strings.TrimSpace(c.Shell) == "" {
		return fmt.Errorf("invalid shell: must not be empty")
	}

	if strings.TrimSpace(c.Interpreter) == "" {
		return fmt.Errorf("invalid interpreter: must not be empty")
	}

	if strings.Count(c.Directive, "%s") != 1 {
		return fmt.Errorf("invalid directive %q: must contain exactly one %%s", c.Directive)
	}

	if len(c.Extension) < 2 || !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("invalid extension %q: must start with a dot", c.Extension)
	}

	if c.Debounce < 0 {
		return fmt.Errorf("invalid debounce %s: must not be negative", c.Debounce)
	}

	return nil
}

// EffectiveLogLevel returns the log level to use. When Quiet is true the log
// level is overridden to "error" regardless of the configured LogLevel.
func (c *Config) EffectiveLogLevel() string {
	if c.Quiet {
		return LogLevelError
	}

	return c.LogLevel
}

// Load initialises configuration from flags, environment variables, and an
// optional config file. A fresh viper instance is used on every call so that
// Load is safe for concurrent tests.
func Load(cmd *cobra.Command, configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)
	configureEnv(v)

	if err := configureFile(v, configFile); err != nil {
		return nil, err
	}

	if err := bindFlags(v, cmd); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.ConfigFile = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("no-color", d.NoColor)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("shell", d.Shell)
	v.SetDefault("interpreter", d.Interpreter)
	v.SetDefault("directive", d.Directive)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("debounce", d.Debounce)
}

func configureEnv(v *viper.Viper) {
	v.SetEnvPrefix("MLRUN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

func configureFile(v *viper.Viper, configFile string) error {
	if configFile != "" {
		v.SetConfigFile(configFile)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %q: %w", configFile, err)
		}

		return nil
	}

	v.SetConfigName(".mlrun")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "mlrun"))
	}

	if err := v.ReadInConfig(); err != nil {
		// Auto-discovery is optional.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}

		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// bindFlags walks from cmd up to the root and binds all PersistentFlags.
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	for c := cmd; c != nil; c = c.Parent() {
		if err := v.BindPFlags(c.PersistentFlags()); err != nil {
			return fmt.Errorf("binding persistent flags: %w", err)
		}
	}

	return nil
}

type ctxKey struct{}

// NewContext returns a child context carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext extracts a Config from ctx, falling back to Default().
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(ctxKey{}).(*Config); ok {
		return cfg
	}

	return Default()
}
