package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/tui"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive country selection with live report",
	Long: `Opens a terminal dashboard. Pick countries from a filterable list;
the report is recomputed on every change. Datasets are downloaded once
and kept for CACHE_TTL.

Keys:
  space/enter  toggle country
  /            filter the list
  tab          switch focus between list and report
  q            quit

Example:
  go run ./cmd/covid dashboard
  go run ./cmd/covid dashboard --country Norway --country Denmark`,
	RunE: runDashboard,
}

var (
	// Dashboard flags
	dashboardCountries []string
)

func init() {
	rootCmd.AddCommand(dashboardCmd)

	// Flags
	dashboardCmd.Flags().StringArrayVarP(&dashboardCountries, "country", "c", nil, "initially selected country (repeatable)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	return tui.Run(ctx, a.builder, a.selection(dashboardCountries))
}
