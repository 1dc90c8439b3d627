package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Iron-Ham/lazygantt/internal/gantt"
	"github.com/Iron-Ham/lazygantt/internal/logging"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "data.separator")
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

// IsUserFacing reports that invalid settings are a problem with the user's
// configuration.
func (e ValidationErrors) IsUserFacing() bool {
	return true
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidLogFormats returns the list of valid log formats
func ValidLogFormats() []string {
	return []string{logging.FormatText, logging.FormatJSON}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateData()...)
	errors = append(errors, c.validateOutput()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateData validates the DataConfig
func (c *Config) validateData() []ValidationError {
	var errors []ValidationError

	if _, err := c.Data.SeparatorRune(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "data.separator",
			Value:   c.Data.Separator,
			Message: err.Error(),
		})
	}

	if err := c.Data.Columns.Validate(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "data.columns",
			Value:   c.Data.Columns,
			Message: err.Error(),
		})
	}

	if _, err := c.Data.PhaseEndRule(); err != nil {
		errors = append(errors, ValidationError{
			Field:   "data.phase_end",
			Value:   c.Data.PhaseEnd,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(gantt.ValidPhaseEndRules(), ", ")),
		})
	}

	return errors
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	var errors []ValidationError

	if strings.ContainsRune(c.Output.Dir, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "output.dir",
			Value:   c.Output.Dir,
			Message: "path contains invalid null character",
		})
	}

	basename := c.Output.Basename
	switch {
	case strings.TrimSpace(basename) == "":
		errors = append(errors, ValidationError{
			Field:   "output.basename",
			Value:   basename,
			Message: "must not be empty",
		})
	case strings.ContainsAny(basename, `/\`) || basename != filepath.Base(basename) || basename == "." || basename == "..":
		errors = append(errors, ValidationError{
			Field:   "output.basename",
			Value:   basename,
			Message: "must be a file name without directory",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(ValidLogFormats(), c.Logging.Format) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogFormats(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be non-negative",
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}
