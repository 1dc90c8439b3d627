package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/errors"
)

// Process exit codes.
const (
	ExitOK = 0
	// ExitFailure covers usage errors and failures that are not caused by
	// the input, such as an unwritable output directory.
	ExitFailure = 1
	// ExitInput means the data file, the chart configuration or the settings
	// were rejected.
	ExitInput = 2
)

// ExitCode maps an error returned by Execute to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsUserFacing(err):
		return ExitInput
	default:
		return ExitFailure
	}
}

// reportError prints err to w. Input errors already carry their file, row
// and column context; other errors get the command's usage hint.
func reportError(w io.Writer, c *cobra.Command, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	if !errors.IsUserFacing(err) && c != nil {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", c.CommandPath())
	}
}
