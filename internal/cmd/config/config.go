// Package config provides CLI commands for managing lazygantt configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	appconfig "github.com/Iron-Ham/lazygantt/internal/config"
)

// appFs is the file system configuration files are read from and written to.
var appFs = afero.NewOsFs()

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create lazygantt configuration",
	Long: `View or create lazygantt configuration.

Without arguments, displays the current configuration.
Use subcommands to create a config file or export the chart configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/lazygantt/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// Register adds the config command tree to the given parent command.
func Register(parent *cobra.Command) {
	parent.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := appconfig.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Config file: (none - using defaults)\n")
	}
	fmt.Fprintln(out)

	// Data settings
	fmt.Fprintln(out, "data:")
	fmt.Fprintf(out, "  separator: %q\n", cfg.Data.Separator)
	fmt.Fprintf(out, "  columns.start: %s\n", cfg.Data.Columns.Start)
	fmt.Fprintf(out, "  columns.duration: %s\n", cfg.Data.Columns.Duration)
	fmt.Fprintf(out, "  columns.group_id: %s\n", cfg.Data.Columns.GroupID)
	fmt.Fprintf(out, "  phase_end: %s\n", cfg.Data.PhaseEnd)

	// Output settings
	fmt.Fprintln(out, "output:")
	fmt.Fprintf(out, "  dir: %s\n", cfg.Output.Dir)
	fmt.Fprintf(out, "  basename: %s\n", cfg.Output.Basename)
	if cfg.Output.ChartConfig != "" {
		fmt.Fprintf(out, "  chart_config: %s\n", cfg.Output.ChartConfig)
	} else {
		fmt.Fprintln(out, "  chart_config: (none - built-in chart style)")
	}

	// Logging settings
	fmt.Fprintln(out, "logging:")
	fmt.Fprintf(out, "  level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "  format: %s\n", cfg.Logging.Format)
	if cfg.Logging.File != "" {
		fmt.Fprintf(out, "  file: %s\n", cfg.Logging.File)
		fmt.Fprintf(out, "  max_size_mb: %d\n", cfg.Logging.MaxSizeMB)
		fmt.Fprintf(out, "  max_backups: %d\n", cfg.Logging.MaxBackups)
	} else {
		fmt.Fprintln(out, "  file: (stderr)")
	}

	return nil
}

// configTemplate is the commented config file written by 'config init'.
const configTemplate = `# lazygantt configuration

# How the data file is read
data:
  # Field separator; use "\t" for tab separated files
  separator: ";"
  # Column name for each role
  columns:
    start: start
    duration: duration
    # Optional: consecutive rows sharing a value form a phase
    group_id: group_id
  # How a phase ends
  # Options: next_start, next_first_end
  phase_end: next_start

# Where charts are written
output:
  dir: .
  # File name without extension; the extension follows the image format
  basename: gantt
  # Chart configuration file (colors, image size, labels, font).
  # Empty uses the built-in style. Create one with 'lazygantt config chart'.
  chart_config: ""

# Diagnostic output
logging:
  # Options: debug, info, warn, error
  level: info
  # Options: text, json
  format: text
  # Write log records to this file instead of stderr
  file: ""
  # Rotate the log file once it grows past this many megabytes (0 disables)
  max_size_mb: 10
  # Number of rotated log files to keep
  max_backups: 3
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := appconfig.ConfigDir()
	configFile := appconfig.ConfigFile()

	// Check if config file already exists
	if exists, _ := afero.Exists(appFs, configFile); exists {
		return fmt.Errorf("config file already exists at %s\nEdit it directly to change values", configFile)
	}

	// Create config directory
	if err := appFs.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := afero.WriteFile(appFs, configFile, []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize lazygantt's behavior.")

	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	configFile := appconfig.ConfigFile()
	out := cmd.OutOrStdout()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", filepath.Join(appconfig.ConfigDir(), "config.yaml"))
	fmt.Fprintf(out, "  2. $HOME/.config/lazygantt/config.yaml\n")
	fmt.Fprintf(out, "  3. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: LAZYGANTT_* (e.g., LAZYGANTT_DATA_SEPARATOR)")

	if exists, _ := afero.Exists(appFs, appconfig.ChartConfigFile()); exists {
		fmt.Fprintf(out, "\nChart config found: %s\n", appconfig.ChartConfigFile())
	}

	return nil
}
