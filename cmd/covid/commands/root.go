package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/render"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "covid",
	Short: "Current COVID-19 statistics for Europe and Norwegian entry quarantine rules",
	Long: `covid-europe CLI

Downloads the ECDC weekly testing and case notification datasets,
shows the latest figures per country and the quarantine required
for entry into Norway.

Usage:
  go run ./cmd/covid [command]

Examples:
  go run ./cmd/covid report --country Germany --country Sweden
  go run ./cmd/covid report --html report.html
  go run ./cmd/covid dashboard
  go run ./cmd/covid countries
  go run ./cmd/covid history Germany --limit 5
  go run ./cmd/covid status`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, render.NewTerminal(os.Stderr).Errors(err))
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
