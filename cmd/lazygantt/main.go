// Command lazygantt renders Gantt charts from delimited task tables.
package main

import (
	"os"

	"github.com/Iron-Ham/lazygantt/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
