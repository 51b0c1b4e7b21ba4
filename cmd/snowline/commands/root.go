// Package commands implements the CLI commands for snowline.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "snowline",
	Short: "Scrape and clean the North American ski resort snowfall dataset",
	Long: `Snowline fetches the ski resort comparison table from its reference
page, runs it through the cleaning pipeline, and emits the cleaned
dataset in JSON, JSONL, YAML, or CSV.

Examples:
  # Scrape and clean the reference table
  snowline scrape --contact you@example.com

  # Save the cleaned dataset as CSV
  snowline scrape --contact you@example.com --format csv -o resorts.csv

  # Summarize a previously saved dataset
  snowline stats --input resorts.csv --top 10`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.snowline.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".snowline")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SNOWLINE")
	viper.AutomaticEnv()

	// The contact address usually lives in the environment rather than on
	// the command line.
	_ = viper.BindEnv("contact", "SNOWLINE_CONTACT")

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
