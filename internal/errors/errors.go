// Package errors provides centralized error definitions and error handling utilities
// for lazygantt. It defines sentinel errors, domain-specific error types with
// context builders, and classification helpers.
//
// # Error Types
//
// Domain-specific errors represent failures of a specific stage of the
// load-and-render pipeline:
//   - ColumnError: a mandatory data column cannot be processed
//   - DataError: a data file or one of its rows cannot be used
//   - ConfigError: a chart configuration file is incomplete or invalid
//
// Every error produced by these types is fatal for the operation that
// returned it. Recoverable conditions (an optional column that is dropped,
// an out-of-range milestone, an unknown color name) are logged and never
// surface as errors.
//
// # Usage
//
// Creating errors:
//
//	err := errors.NewColumnError("mandatory column cannot be processed", errors.ErrColumnMissing).
//		WithColumn("start").WithCheck("existence")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrMandatoryColumn) { ... }
//
//	var colErr *errors.ColumnError
//	if errors.As(err, &colErr) { fmt.Println(colErr.Column) }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Column-related sentinel errors
var (
	// ErrNoColumns indicates that there are no recognized columns to validate.
	ErrNoColumns = New("no columns to validate")
	// ErrMandatoryColumn indicates that a mandatory column failed validation.
	ErrMandatoryColumn = New("mandatory column cannot be processed")
	// ErrColumnMissing indicates that a column is absent from the table.
	ErrColumnMissing = New("column is missing")
	// ErrColumnEmpty indicates that a column holds no values.
	ErrColumnEmpty = New("column is empty")
	// ErrColumnNotNumeric indicates that a column holds text instead of numbers.
	ErrColumnNotNumeric = New("column holds text instead of numeric data")
)

// Data-related sentinel errors
var (
	// ErrNoRecords indicates that no usable records remain after filtering.
	ErrNoRecords = New("no records")
	// ErrInvalidValue indicates that a cell value is unusable.
	ErrInvalidValue = New("invalid value")
	// ErrMalformedTable indicates that a delimited file cannot be parsed.
	ErrMalformedTable = New("malformed table")
)

// Configuration-related sentinel errors
var (
	// ErrMissingSection indicates that a required configuration section is absent.
	ErrMissingSection = New("missing configuration section")
	// ErrMissingKey indicates that a required key of a configuration section is absent.
	ErrMissingKey = New("missing configuration key")
	// ErrInvalidConfig indicates that a configuration value is invalid.
	ErrInvalidConfig = New("invalid configuration")
	// ErrUnsupportedFormat indicates that an output image format is not supported.
	ErrUnsupportedFormat = New("unsupported image format")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// GanttError is the base interface for all lazygantt errors.
type GanttError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ColumnError represents a mandatory column that failed validation.
//
// Example:
//
//	err := errors.NewColumnError("column 'start' is missing in the input data", errors.ErrColumnMissing)
//	err = err.WithColumn("start").WithCheck("existence")
//	fmt.Println(err) // "column error [column=start, check=existence]: column 'start' is missing ..."
type ColumnError struct {
	baseError
	Column string
	Check  string
}

// NewColumnError creates a new ColumnError.
func NewColumnError(message string, cause error) *ColumnError {
	return &ColumnError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
	}
}

// WithColumn adds the offending column name to the error context.
func (e *ColumnError) WithColumn(column string) *ColumnError {
	e.Column = column
	return e
}

// WithCheck adds the name of the failed check to the error context.
func (e *ColumnError) WithCheck(check string) *ColumnError {
	e.Check = check
	return e
}

// Error returns the formatted error message.
func (e *ColumnError) Error() string {
	var parts []string
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Check != "" {
		parts = append(parts, fmt.Sprintf("check=%s", e.Check))
	}
	return e.format("column error", parts)
}

// Is checks if this error matches the target.
// A ColumnError always matches ErrMandatoryColumn.
func (e *ColumnError) Is(target error) bool {
	if _, ok := target.(*ColumnError); ok {
		return true
	}
	if target == ErrMandatoryColumn {
		return true
	}
	return e.baseError.Is(target)
}

// DataError represents an unusable data file or data row.
//
// Example:
//
//	err := errors.NewDataError("duration must be positive", errors.ErrInvalidValue)
//	err = err.WithFile("plan.csv").WithRow(4).WithColumn("duration")
type DataError struct {
	baseError
	File   string
	Row    int
	Column string
}

// NewDataError creates a new DataError.
func NewDataError(message string, cause error) *DataError {
	return &DataError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
	}
}

// WithFile adds the data file path to the error context.
func (e *DataError) WithFile(path string) *DataError {
	e.File = path
	return e
}

// WithRow adds the 1-based data row number to the error context.
func (e *DataError) WithRow(row int) *DataError {
	e.Row = row
	return e
}

// WithColumn adds a column name to the error context.
func (e *DataError) WithColumn(column string) *DataError {
	e.Column = column
	return e
}

// Error returns the formatted error message.
func (e *DataError) Error() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.File))
	}
	if e.Row > 0 {
		parts = append(parts, fmt.Sprintf("row=%d", e.Row))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	return e.format("data error", parts)
}

// Is checks if this error matches the target.
func (e *DataError) Is(target error) bool {
	if _, ok := target.(*DataError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ConfigError represents an incomplete or invalid chart configuration file.
//
// Example:
//
//	err := errors.NewConfigError("section is required", errors.ErrMissingSection)
//	err = err.WithFile("config.yaml").WithSection("image")
type ConfigError struct {
	baseError
	File    string
	Section string
	Key     string
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, cause error) *ConfigError {
	return &ConfigError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			userFacing: true,
		},
	}
}

// WithFile adds the configuration file path to the error context.
func (e *ConfigError) WithFile(path string) *ConfigError {
	e.File = path
	return e
}

// WithSection adds the section name to the error context.
func (e *ConfigError) WithSection(section string) *ConfigError {
	e.Section = section
	return e
}

// WithKey adds the key name to the error context.
func (e *ConfigError) WithKey(key string) *ConfigError {
	e.Key = key
	return e
}

// Error returns the formatted error message.
func (e *ConfigError) Error() string {
	var parts []string
	if e.File != "" {
		parts = append(parts, fmt.Sprintf("file=%s", e.File))
	}
	if e.Section != "" {
		parts = append(parts, fmt.Sprintf("section=%s", e.Section))
	}
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("key=%s", e.Key))
	}
	return e.format("config error", parts)
}

// Is checks if this error matches the target.
func (e *ConfigError) Is(target error) bool {
	if _, ok := target.(*ConfigError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error reports a problem with the user's
// input (data file, chart configuration, settings) rather than a failure of
// lazygantt itself. Any error in the chain may classify itself by
// implementing IsUserFacing() bool.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var classified interface{ IsUserFacing() bool }
	if As(err, &classified) {
		return classified.IsUserFacing()
	}
	return false
}

// Wrap wraps an error with additional context message.
// Unlike fmt.Errorf with %w, this returns nil for a nil error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
