package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/preview"
)

var previewFlags struct {
	chartFlags
	width int
}

var previewCmd = &cobra.Command{
	Use:   "preview [data-file]",
	Short: "Print a Gantt chart in the terminal",
	Long: `Print a text rendition of the chart in the terminal.

Takes the same inputs as 'render'. Months that do not fit the terminal width
are cut off and marked with an ellipsis.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewFlags.register(previewCmd)
	previewCmd.Flags().IntVarP(&previewFlags.width, "width", "w", 0, "output width in columns (default: terminal width)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	in, err := loadInputs(cmd, args, &previewFlags.chartFlags, nil)
	if err != nil {
		return err
	}
	defer in.close()

	width := previewFlags.width
	if width <= 0 {
		width = preview.TerminalWidth()
	}
	fmt.Fprint(cmd.OutOrStdout(), preview.Render(in.gantt, in.style, width))
	return nil
}
