package config

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/chart"
	appconfig "github.com/Iron-Ham/lazygantt/internal/config"
	"github.com/Iron-Ham/lazygantt/internal/logging"
)

var chartCmd = &cobra.Command{
	Use:   "chart [output-file]",
	Short: "Export the default chart configuration",
	Long: `Export the built-in chart configuration to YAML.

The chart configuration sets colors, image size and format, milestone line
width, labels and font size. Use the export as a starting point and point
output.chart_config (or --style) at the edited file.

If no output file is specified, the YAML is printed to stdout.

Examples:
  lazygantt config chart                 # Print the default chart configuration
  lazygantt config chart chart.yaml      # Save it to a file
  lazygantt config chart check my.yaml   # Validate a chart configuration`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChartExport,
}

var chartCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a chart configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runChartCheck,
}

var chartCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a chart configuration file in the config directory",
	Long: `Create chart.yaml in the lazygantt config directory from the built-in
chart configuration, ready to be edited.`,
	RunE: runChartCreate,
}

func init() {
	chartCmd.AddCommand(chartCheckCmd)
	chartCmd.AddCommand(chartCreateCmd)
	configCmd.AddCommand(chartCmd)
}

func runChartExport(cmd *cobra.Command, args []string) error {
	var buf bytes.Buffer
	if err := chart.DefaultStyle().WriteYAML(&buf); err != nil {
		return fmt.Errorf("exporting chart configuration: %w", err)
	}

	// If output file specified, write to file
	if len(args) > 0 {
		outputPath := args[0]
		if err := afero.WriteFile(appFs, outputPath, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Chart configuration exported to: %s\n", outputPath)
		return nil
	}

	// Otherwise print to stdout
	_, err := cmd.OutOrStdout().Write(buf.Bytes())
	return err
}

func runChartCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := logging.New(cmd.ErrOrStderr(), logging.LevelWarn, logging.FormatText)

	style, err := chart.LoadStyle(appFs, path, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w, h := style.PixelSize()
	fmt.Fprintf(out, "Chart configuration: %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Colors:")
	fmt.Fprintf(out, "  Primary:    %s\n", style.Colors.Primary)
	fmt.Fprintf(out, "  Secondary:  %s\n", style.Colors.Secondary)
	fmt.Fprintf(out, "  Contrast:   %s\n", style.Colors.Contrast)
	fmt.Fprintf(out, "  Background: %s\n", style.Colors.Background)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Image: %dx%d px, %s\n", w, h, style.Format())

	return nil
}

func runChartCreate(cmd *cobra.Command, args []string) error {
	chartFile := appconfig.ChartConfigFile()
	if exists, _ := afero.Exists(appFs, chartFile); exists {
		return fmt.Errorf("chart configuration already exists at %s", chartFile)
	}
	if err := appFs.MkdirAll(filepath.Dir(chartFile), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := runChartExport(cmd, []string{chartFile}); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "To use it, set output.chart_config in your config file:")
	fmt.Fprintf(out, "  chart_config: %s\n", chartFile)
	return nil
}
