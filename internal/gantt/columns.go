package gantt

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/lazygantt/internal/errors"
	"github.com/Iron-Ham/lazygantt/internal/logging"
)

// Schema is the view of a table needed to validate its columns.
// *table.Table satisfies it.
type Schema interface {
	HasColumn(name string) bool
	NonNullCount(name string) int
	IsNumeric(name string) bool
}

// columnCheck is one condition a recognized column must meet.
type columnCheck struct {
	name  string
	cause error
	ok    func(s Schema, column string) bool
	fail  func(column string) string
}

// columnChecks run in order; the first failing check decides the diagnostic.
var columnChecks = []columnCheck{
	{
		name:  "existence",
		cause: errors.ErrColumnMissing,
		ok:    func(s Schema, c string) bool { return s.HasColumn(c) },
		fail:  func(c string) string { return fmt.Sprintf("column '%s' is missing in the input data", c) },
	},
	{
		name:  "content",
		cause: errors.ErrColumnEmpty,
		ok:    func(s Schema, c string) bool { return s.NonNullCount(c) > 0 },
		fail:  func(c string) string { return fmt.Sprintf("column '%s' is ignored, since it is empty", c) },
	},
	{
		name:  "numeric",
		cause: errors.ErrColumnNotNumeric,
		ok:    func(s Schema, c string) bool { return s.IsNumeric(c) },
		fail: func(c string) string {
			return fmt.Sprintf("column '%s' is ignored, since it holds text instead of numeric data", c)
		},
	},
}

// ValidateColumns filters recognized down to the columns of s that exist,
// hold at least one value and hold no text. Optional columns failing a
// check are dropped with a warning. A failing mandatory column aborts
// validation with a *errors.ColumnError. The result keeps the order of
// recognized; duplicate names are validated once.
func ValidateColumns(s Schema, recognized, mandatory []string, logger *logging.Logger) ([]string, error) {
	if len(recognized) == 0 {
		return nil, errors.Wrap(errors.ErrNoColumns, "validating columns")
	}
	logger = logging.OrNop(logger).WithComponent("columns")

	valid := make([]string, 0, len(recognized))
	seen := make(map[string]bool, len(recognized))
	for _, column := range recognized {
		if seen[column] {
			continue
		}
		seen[column] = true

		check, failed := firstFailure(s, column)
		if !failed {
			valid = append(valid, column)
			logger.Debug("column accepted", "column", column)
			continue
		}

		message := check.fail(column)
		if slices.Contains(mandatory, column) {
			return nil, errors.NewColumnError(message, check.cause).
				WithColumn(column).
				WithCheck(check.name)
		}
		logger.Warn(message, "column", column, "check", check.name)
	}

	return valid, nil
}

func firstFailure(s Schema, column string) (columnCheck, bool) {
	for _, check := range columnChecks {
		if !check.ok(s, column) {
			return check, true
		}
	}
	return columnCheck{}, false
}
