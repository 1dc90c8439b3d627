package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Iron-Ham/lazygantt/internal/gantt"
	"github.com/Iron-Ham/lazygantt/internal/logging"
	"github.com/Iron-Ham/lazygantt/internal/table"
)

// Config represents the complete lazygantt configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Output  OutputConfig  `mapstructure:"output"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig controls how the input table is read
type DataConfig struct {
	// Separator is the field delimiter of the data file (default: ";").
	// An escaped "\t" selects a tab.
	Separator string `mapstructure:"separator"`
	// Columns maps each role to its column name in the data file
	Columns gantt.ColumnNames `mapstructure:"columns"`
	// PhaseEnd selects how phase ends are derived: "next_start" (default)
	// or "next_first_end"
	PhaseEnd string `mapstructure:"phase_end"`
}

// OutputConfig controls where charts are written
type OutputConfig struct {
	// Dir is the directory charts are written to (default: ".")
	Dir string `mapstructure:"dir"`
	// Basename is the file name without extension (default: "gantt")
	Basename string `mapstructure:"basename"`
	// ChartConfig is the path of a chart configuration file. Empty uses the
	// built-in chart style.
	ChartConfig string `mapstructure:"chart_config"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Format is "text" (default) or "json"
	Format string `mapstructure:"format"`
	// File receives log records instead of stderr when set
	File string `mapstructure:"file"`
	// MaxSizeMB rotates File once it grows past this size (default: 10, 0 disables)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of rotated log files kept (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Separator: string(table.DefaultSeparator),
			Columns:   gantt.DefaultColumnNames(),
			PhaseEnd:  string(gantt.PhaseEndNextStart),
		},
		Output: OutputConfig{
			Dir:         ".",
			Basename:    "gantt",
			ChartConfig: "",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.separator", defaults.Data.Separator)
	viper.SetDefault("data.columns.start", defaults.Data.Columns.Start)
	viper.SetDefault("data.columns.duration", defaults.Data.Columns.Duration)
	viper.SetDefault("data.columns.group_id", defaults.Data.Columns.GroupID)
	viper.SetDefault("data.phase_end", defaults.Data.PhaseEnd)

	// Output defaults
	viper.SetDefault("output.dir", defaults.Output.Dir)
	viper.SetDefault("output.basename", defaults.Output.Basename)
	viper.SetDefault("output.chart_config", defaults.Output.ChartConfig)

	// Logging defaults
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// SeparatorRune returns the configured field delimiter
func (d *DataConfig) SeparatorRune() (rune, error) {
	return table.ParseSeparator(d.Separator)
}

// PhaseEndRule returns the configured phase end rule
func (d *DataConfig) PhaseEndRule() (gantt.PhaseEndRule, error) {
	return gantt.ParsePhaseEndRule(d.PhaseEnd)
}

// Rotation returns the rotation settings for the log file
func (l *LoggingConfig) Rotation() logging.RotationConfig {
	return logging.RotationConfig{
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lazygantt")
	}
	// Fall back to ~/.config/lazygantt
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lazygantt"
	}
	return filepath.Join(home, ".config", "lazygantt")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ChartConfigFile returns the default path of the chart configuration file
func ChartConfigFile() string {
	return filepath.Join(ConfigDir(), "chart.yaml")
}
