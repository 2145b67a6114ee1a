package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/history"
	"github.com/wonny/covid-europe/internal/quarantine"
	"github.com/wonny/covid-europe/internal/render"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history <country>",
	Short: "Recorded quarantine classifications of a country",
	Long: `Lists the most recent classifications stored by "report --record".
Requires DATABASE_URL.

Example:
  go run ./cmd/covid history Germany
  go run ./cmd/covid history Norway --limit 30`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

var (
	// History flags
	historyLimit int
)

func init() {
	rootCmd.AddCommand(historyCmd)

	// Flags
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultLimit, "number of entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	country := args[0]
	if historyLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", historyLimit)
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	repo, err := a.openHistory(cmd.Context())
	if err != nil {
		return err
	}

	items, err := repo.Latest(cmd.Context(), country, historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	PrintHeader(out, fmt.Sprintf("Classification history: %s", country))
	if len(items) == 0 {
		PrintWarning(out, "No classifications recorded")
		return nil
	}

	widths := []int{20, 10, 10, 12, 30}
	PrintTableHeader(out, []string{"classified_at", "week", "positivity", "rate_14_day", "rule"}, widths)
	for _, it := range items {
		PrintTableRow(out, []string{
			it.ClassifiedAt.Local().Format("2006-01-02 15:04:05"),
			it.WeekDate.Format("2006-01-02"),
			render.FormatPercent(it.PositivityRate),
			render.FormatNumber(it.Rate14Day),
			quarantine.Message(it.Category),
		}, widths)
	}
	return nil
}
