package logger

import (
	"fmt"
	"strings"

	corelogger "github.com/kilianp07/evcharge/core/logger"
)

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger = corelogger.Nop

// Config selects the log level and output format.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`
	// Format is "json" or "console". Empty defers to APP_ENV.
	Format string `json:"format"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("unknown log format %s", c.Format)
	}
	return nil
}

var defaults Config

// Configure sets the level and format used by loggers created afterwards.
func Configure(cfg Config) error {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	defaults = cfg
	return nil
}

// New returns a Logger for the given component using the configured
// defaults. Without explicit format the environment is detected via APP_ENV.
func New(component string) Logger {
	return NewZerologLogger(component, defaults)
}
