package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/chart"
	"github.com/Iron-Ham/lazygantt/internal/config"
	"github.com/Iron-Ham/lazygantt/internal/errors"
)

var renderFlags struct {
	chartFlags
	outputDir string
	basename  string
	format    string
}

var renderCmd = &cobra.Command{
	Use:   "render [data-file]",
	Short: "Render a Gantt chart image",
	Long: `Render a Gantt chart from a delimited data file.

The data file needs a start and a duration column (months). A group column
is optional: consecutive rows sharing a group form a phase. Column names,
the separator and the phase end rule come from the configuration and can be
overridden with flags.

Without a data file, the built-in demo chart is rendered.

Examples:
  lazygantt render tasks.csv --sep ,
  lazygantt render tasks.csv -m 5,8,14 -o charts -b roadmap
  lazygantt render --style chart.yaml --format svg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderFlags.outputDir, "output-dir", "o", "", "directory to write the chart to (overrides output.dir)")
	renderCmd.Flags().StringVarP(&renderFlags.basename, "basename", "b", "", "file name without extension (overrides output.basename)")
	renderCmd.Flags().StringVarP(&renderFlags.format, "format", "f", "",
		fmt.Sprintf("image format: %s (overrides the chart configuration)", strings.Join(chart.SupportedFormats(), ", ")))
}

func runRender(cmd *cobra.Command, args []string) error {
	in, err := loadInputs(cmd, args, &renderFlags.chartFlags, func(cfg *config.Config) {
		if cmd.Flags().Changed("output-dir") {
			cfg.Output.Dir = renderFlags.outputDir
		}
		if cmd.Flags().Changed("basename") {
			cfg.Output.Basename = renderFlags.basename
		}
	})
	if err != nil {
		return err
	}
	defer in.close()

	if cmd.Flags().Changed("format") {
		if !chart.IsSupportedFormat(renderFlags.format) {
			return errors.NewConfigError(
				fmt.Sprintf("unsupported format %q, expected one of: %s", renderFlags.format, strings.Join(chart.SupportedFormats(), ", ")),
				errors.ErrUnsupportedFormat,
			).WithSection("image").WithKey("format")
		}
		in.style.Image.Format = renderFlags.format
	}

	path, err := chart.Save(appFs, in.cfg.Output.Dir, in.cfg.Output.Basename, in.gantt, in.style)
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}

	w, h := in.style.PixelSize()
	in.logger.Info("chart written", "path", path, "width", w, "height", h)
	fmt.Fprintf(cmd.OutOrStdout(), "Chart written to %s\n", path)
	return nil
}
