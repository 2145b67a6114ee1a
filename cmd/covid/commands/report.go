package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/render"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Latest statistics and quarantine rules for selected countries",
	Long: `Downloads the ECDC datasets and prints, for the selected countries:

- the quarantine required for entry into Norway
- national weekly testing figures with colored positivity rate
- the 14-day case notification rate per 100 000 population

Without --country the DEFAULT_COUNTRIES setting is used (Germany).

Example:
  go run ./cmd/covid report
  go run ./cmd/covid report --country Germany --country Sweden
  go run ./cmd/covid report --country Norway --html norway.html
  go run ./cmd/covid report --json --record`,
	RunE: runReport,
}

var (
	// Report flags
	reportCountries []string
	reportHTML      string
	reportJSON      bool
	reportRecord    bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringArrayVarP(&reportCountries, "country", "c", nil, "country to include (repeatable)")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "also write an HTML page with interactive charts to this path")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON")
	reportCmd.Flags().BoolVar(&reportRecord, "record", false, "store the classifications in the history database")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	r, err := a.builder.Build(ctx, a.selection(reportCountries))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reportJSON {
		if err := render.JSON(out, r); err != nil {
			return err
		}
	} else {
		if err := render.NewTerminal(out).Write(out, r); err != nil {
			return err
		}
	}

	if reportHTML != "" {
		if err := writeHTML(reportHTML, r); err != nil {
			return err
		}
		PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("HTML report written to %s", reportHTML))
	}

	if reportRecord {
		repo, err := a.openHistory(ctx)
		if err != nil {
			return err
		}
		items := r.Classifications()
		if err := repo.Save(ctx, items); err != nil {
			return err
		}
		PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Recorded %d classifications", len(items)))
	}

	return nil
}
