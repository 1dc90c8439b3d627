package cmd

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/lazygantt/internal/cmd/config"
	"github.com/Iron-Ham/lazygantt/internal/config"
)

// appFs is the file system data, chart configuration and output go through.
var appFs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "lazygantt",
	Short: "Render Gantt charts from delimited task tables",
	Long: `lazygantt turns a table of work packages into a Gantt chart image.

Each row of the input table is a work package with a start month and a
duration. An optional group column clusters consecutive packages into phases,
drawn as a second panel above the packages. Milestones are drawn as vertical
markers.

Without a data file, a built-in demo chart is rendered.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints the error it fails with.
func Execute() error {
	c, err := rootCmd.ExecuteC()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), c, err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/lazygantt/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(columnsCmd)
	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/lazygantt")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("LAZYGANTT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., LAZYGANTT_DATA_SEPARATOR for data.separator
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
