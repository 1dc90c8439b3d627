package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/lazygantt/internal/config"
	"github.com/Iron-Ham/lazygantt/internal/gantt"
	"github.com/Iron-Ham/lazygantt/internal/table"
)

var columnsSep string

var columnsCmd = &cobra.Command{
	Use:   "columns [data-file]",
	Short: "List the column roles and check a data file against them",
	Long: `List the column roles lazygantt understands and the column name each
role is read from.

With a data file, every configured column is checked for existence, content
and numeric data, and the columns that would be used are reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runColumns,
}

var (
	columnHeading = lipgloss.NewStyle().Bold(true)
	columnUsed    = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	columnUnused  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

func init() {
	columnsCmd.Flags().StringVar(&columnsSep, "sep", "", `field separator of the data file (overrides data.separator, "\t" for tab)`)
}

func runColumns(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sep") {
		cfg.Data.Separator = columnsSep
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return config.ValidationErrors(errs)
	}
	names := cfg.Data.Columns
	out := cmd.OutOrStdout()

	var (
		valid []string
		data  *table.Table
	)
	if len(args) == 1 {
		logger, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()

		sep, _ := cfg.Data.SeparatorRune()
		data, err = table.ReadFile(appFs, args[0], sep)
		if err != nil {
			return err
		}
		valid, err = gantt.ValidateColumns(data, names.Recognized(), names.Mandatory(), logger.WithFile(args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s (%d rows)\n\n", columnHeading.Render("File:"), args[0], data.Len())
	}

	fmt.Fprintln(out, columnHeading.Render(fmt.Sprintf("%-10s %-20s %s", "ROLE", "COLUMN", "REQUIRED")))
	for _, role := range gantt.Roles() {
		required := "no"
		if slices.Contains(gantt.MandatoryRoles(), role) {
			required = "yes"
		}
		line := fmt.Sprintf("%-10s %-20s %s", role, names.Name(role), required)
		switch {
		case len(args) == 0:
			fmt.Fprintln(out, line)
		case slices.Contains(valid, names.Name(role)):
			fmt.Fprintln(out, columnUsed.Render(line+"  used"))
		default:
			fmt.Fprintln(out, columnUnused.Render(line+"  ignored"))
		}
	}

	if data != nil {
		var other []string
		for _, column := range data.Columns() {
			if !slices.Contains(names.Recognized(), column) {
				other = append(other, column)
			}
		}
		if len(other) > 0 {
			fmt.Fprintf(out, "\n%s %s\n", columnHeading.Render("Other columns:"), strings.Join(other, ", "))
		}
	}
	return nil
}
