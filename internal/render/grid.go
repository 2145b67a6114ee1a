package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/internal/highlight"
)

const (
	Title        = "Current COVID-19 Statistics Europe"
	TestingTitle = "COVID-19 Testing"
	CasesTitle   = "14-day notification rate of COVID-19 cases (per 100 000 population)"
)

// Cell is one displayed value; Color is empty for uncolored cells
type Cell struct {
	Text  string
	Color highlight.Color
}

// Grid is a titled table of display cells
type Grid struct {
	Title   string
	Headers []string
	Rows    [][]Cell
}

// TestingGrid lays out the testing table with colored positivity
func TestingGrid(rows []contracts.TestingRow) Grid {
	g := Grid{
		Title:   TestingTitle,
		Headers: []string{"country", "year_week", "new_cases", "tests_done", "population", "positivity_rate_p"},
	}
	for _, r := range rows {
		pos := FormatPercent(r.PositivityRate)
		g.Rows = append(g.Rows, []Cell{
			{Text: r.Country},
			{Text: r.YearWeek},
			{Text: FormatNumber(r.NewCases)},
			{Text: FormatNumber(r.TestsDone)},
			{Text: FormatInt(r.Population)},
			{Text: pos, Color: highlight.Positivity(pos)},
		})
	}
	return g
}

// CasesGrid lays out the case table with colored 14-day rates
func CasesGrid(rows []contracts.CaseRow) Grid {
	g := Grid{
		Title:   CasesTitle,
		Headers: []string{"country", "year_week", "indicator", "population", "weekly_count", "rate_14_day"},
	}
	for _, r := range rows {
		rate := FormatNumber(r.Rate14Day)
		g.Rows = append(g.Rows, []Cell{
			{Text: r.Country},
			{Text: r.YearWeek},
			{Text: r.Indicator},
			{Text: FormatInt(r.Population)},
			{Text: FormatNumber(r.WeeklyCount)},
			{Text: rate, Color: highlight.CaseRate(rate)},
		})
	}
	return g
}

// FormatPercent renders a percentage with two decimals ("6.67%")
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatInt renders a whole number, dropping any fraction
func FormatInt(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatInt(int64(v), 10)
}

// FormatNumber renders a float in its shortest form
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
