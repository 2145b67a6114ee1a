package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/internal/report"
	"github.com/wonny/covid-europe/internal/transform"
)

// JSON has no NaN, so unknown values are encoded as null

type jsonRule struct {
	Country        string               `json:"country"`
	Category       contracts.Quarantine `json:"category,omitempty"`
	Message        string               `json:"message"`
	NoData         bool                 `json:"no_data"`
	TestingWeek    string               `json:"testing_week,omitempty"`
	PositivityRate *float64             `json:"positivity_rate"`
	CasesWeek      string               `json:"cases_week,omitempty"`
	Rate14Day      *float64             `json:"rate_14_day"`
}

type jsonTestingRow struct {
	Country        string   `json:"country"`
	YearWeek       string   `json:"year_week"`
	Date           *string  `json:"date"`
	NewCases       *float64 `json:"new_cases"`
	TestsDone      *float64 `json:"tests_done"`
	Population     *float64 `json:"population"`
	TestingRate    *float64 `json:"testing_rate"`
	PositivityRate *float64 `json:"positivity_rate"`
}

type jsonCaseRow struct {
	Country     string   `json:"country"`
	YearWeek    string   `json:"year_week"`
	Date        *string  `json:"date"`
	Indicator   string   `json:"indicator"`
	Population  *float64 `json:"population"`
	WeeklyCount *float64 `json:"weekly_count"`
	Rate14Day   *float64 `json:"rate_14_day"`
}

type jsonReport struct {
	Countries   []string          `json:"countries"`
	GeneratedAt time.Time         `json:"generated_at"`
	Rules       []jsonRule        `json:"rules"`
	Testing     []jsonTestingRow  `json:"testing"`
	Cases       []jsonCaseRow     `json:"cases"`
	Positivity  []transform.Point `json:"positivity"`
	CaseRate    []transform.Point `json:"case_rate"`
}

// JSON writes the report as indented JSON
func JSON(w io.Writer, r *report.Report) error {
	out := jsonReport{
		Countries:   r.Countries,
		GeneratedAt: r.GeneratedAt,
		Rules:       make([]jsonRule, 0, len(r.Rules)),
		Testing:     make([]jsonTestingRow, 0, len(r.Testing)),
		Cases:       make([]jsonCaseRow, 0, len(r.Cases)),
		Positivity:  r.Positivity,
		CaseRate:    r.CaseRate,
	}

	for _, rule := range r.Rules {
		out.Rules = append(out.Rules, jsonRule{
			Country:        rule.Country,
			Category:       rule.Category,
			Message:        rule.Message,
			NoData:         rule.NoData,
			TestingWeek:    rule.Snapshot.TestingWeek,
			PositivityRate: number(rule.Snapshot.PositivityRate),
			CasesWeek:      rule.Snapshot.CasesWeek,
			Rate14Day:      number(rule.Snapshot.Rate14Day),
		})
	}
	for _, row := range r.Testing {
		out.Testing = append(out.Testing, jsonTestingRow{
			Country:        row.Country,
			YearWeek:       row.YearWeek,
			Date:           day(row.Date),
			NewCases:       number(row.NewCases),
			TestsDone:      number(row.TestsDone),
			Population:     number(row.Population),
			TestingRate:    number(row.TestingRate),
			PositivityRate: number(row.PositivityRate),
		})
	}
	for _, row := range r.Cases {
		out.Cases = append(out.Cases, jsonCaseRow{
			Country:     row.Country,
			YearWeek:    row.YearWeek,
			Date:        day(row.Date),
			Indicator:   row.Indicator,
			Population:  number(row.Population),
			WeeklyCount: number(row.WeeklyCount),
			Rate14Day:   number(row.Rate14Day),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func number(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func day(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
