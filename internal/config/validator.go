package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/watch/internal/ansitext"
	"github.com/Iron-Ham/watch/internal/diff"
	"github.com/Iron-Ham/watch/internal/errors"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "logging.max_size_mb")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is reports ValidationErrors as an invalid configuration.
func (e ValidationErrors) Is(target error) bool {
	return target == errors.ErrInvalidConfig
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateRun()...)
	errs = append(errs, c.validateTerminal()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

// validateRun validates the options that drive the run loop
func (c *Config) validateRun() []ValidationError {
	var errs []ValidationError

	if _, err := ParseInterval(c.Interval); err != nil {
		errs = append(errs, ValidationError{
			Field:   "interval",
			Value:   c.Interval,
			Message: err.Error(),
		})
	}

	if _, err := diff.ParseMode(c.Differences); err != nil {
		errs = append(errs, ValidationError{
			Field:   "differences",
			Value:   c.Differences,
			Message: "must be one of: none, changes, permanent",
		})
	}

	if !slices.Contains(ansitext.ValidColorModes(), c.Color) {
		errs = append(errs, ValidationError{
			Field:   "color",
			Value:   c.Color,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ansitext.ValidColorModes(), ", ")),
		})
	}

	// -1 disables the stable-count exit
	if c.EquExit < -1 {
		errs = append(errs, ValidationError{
			Field:   "equexit",
			Value:   c.EquExit,
			Message: "must be non-negative",
		})
	}

	if !c.Exec && strings.TrimSpace(c.Shell) == "" {
		errs = append(errs, ValidationError{
			Field:   "shell",
			Value:   c.Shell,
			Message: "must not be empty unless exec mode is enabled",
		})
	}

	return errs
}

// validateTerminal validates the size overrides
func (c *Config) validateTerminal() []ValidationError {
	var errs []ValidationError

	if c.Terminal.Columns < 0 {
		errs = append(errs, ValidationError{
			Field:   "terminal.columns",
			Value:   c.Terminal.Columns,
			Message: "must be non-negative",
		})
	}
	if c.Terminal.Rows < 0 {
		errs = append(errs, ValidationError{
			Field:   "terminal.rows",
			Value:   c.Terminal.Rows,
			Message: "must be non-negative",
		})
	}

	return errs
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errs = append(errs, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errs
}
