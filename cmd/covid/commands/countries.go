package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// countriesCmd represents the countries command
var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the countries available in the ECDC datasets",
	Long: `Downloads both datasets and lists every country name that can be
passed to --country.

Example:
  go run ./cmd/covid countries
  go run ./cmd/covid countries --plain`,
	RunE: runCountries,
}

var (
	// Countries flags
	countriesPlain bool
)

func init() {
	rootCmd.AddCommand(countriesCmd)

	// Flags
	countriesCmd.Flags().BoolVar(&countriesPlain, "plain", false, "one name per line, no numbering")
}

func runCountries(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	countries, err := a.builder.Countries(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if countriesPlain {
		fmt.Fprintln(out, strings.Join(countries, "\n"))
		return nil
	}

	PrintHeader(out, fmt.Sprintf("Countries (%d)", len(countries)))
	PrintNumberedList(out, countries)
	return nil
}
