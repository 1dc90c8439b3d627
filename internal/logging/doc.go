// Package logging provides structured logging for lazygantt runs.
//
// This package wraps Go's log/slog. Recoverable conditions of the
// load-and-render pipeline (a dropped optional column, filtered milestones,
// an ignored color name) are reported through it at WARN level, so they are
// visible without failing the run.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("", "INFO", logging.FormatText, logging.DefaultRotationConfig())
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("chart saved", "path", "gantt.png")
//
// An empty path writes to stderr; a non-empty path appends to that file,
// which is rotated to <path>.1, <path>.2, ... once it exceeds the configured
// size.
//
// # Persistent Attributes
//
//	fileLogger := logger.WithFile("plan.csv").WithComponent("columns")
//	fileLogger.Warn("column ignored", "column", "phase_number")
//
// Output (text format):
//
//	time=... level=WARN msg="column ignored" file=plan.csv component=columns column=phase_number
//
// # Testing
//
// Use [NopLogger] to discard all output, or [New] with a bytes.Buffer to
// assert on emitted records.
package logging
