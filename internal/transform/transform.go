package transform

import (
	"math"
	"sort"
	"time"

	"github.com/wonny/covid-europe/internal/contracts"
)

const (
	levelNational  = "national"
	indicatorCases = "cases"
)

// NationalTesting keeps the national level testing rows
func NationalTesting(records []contracts.Record) []contracts.TestingRow {
	out := make([]contracts.TestingRow, 0, len(records))
	for _, r := range records {
		if r.Get("level") != levelNational {
			continue
		}
		row := contracts.TestingRow{
			Country:        r.Get("country"),
			CountryCode:    r.Get("country_code"),
			YearWeek:       r.Get("year_week"),
			Level:          r.Get("level"),
			NewCases:       r.Float("new_cases"),
			TestsDone:      r.Float("tests_done"),
			Population:     r.Float("population"),
			TestingRate:    r.Float("testing_rate"),
			PositivityRate: r.Float("positivity_rate"),
			Source:         r.Get("testing_data_source"),
		}
		if d, err := ParseYearWeek(row.YearWeek); err == nil {
			row.Date = d
		}
		out = append(out, row)
	}
	return out
}

// WeeklyCases keeps the case indicator rows
func WeeklyCases(records []contracts.Record) []contracts.CaseRow {
	out := make([]contracts.CaseRow, 0, len(records))
	for _, r := range records {
		if r.Get("indicator") != indicatorCases {
			continue
		}
		row := contracts.CaseRow{
			Country:         r.Get("country"),
			CountryCode:     r.Get("country_code"),
			Continent:       r.Get("continent"),
			YearWeek:        r.Get("year_week"),
			Indicator:       r.Get("indicator"),
			Population:      r.Float("population"),
			WeeklyCount:     r.Float("weekly_count"),
			Rate14Day:       r.Float("rate_14_day"),
			CumulativeCount: r.Float("cumulative_count"),
			Source:          r.Get("source"),
		}
		if d, err := ParseYearWeek(row.YearWeek); err == nil {
			row.Date = d
		}
		out = append(out, row)
	}
	return out
}

// SortTestingDesc orders rows by year_week, newest first
func SortTestingDesc(rows []contracts.TestingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].YearWeek > rows[j].YearWeek
	})
}

// SortCasesDesc orders rows by year_week, newest first
func SortCasesDesc(rows []contracts.CaseRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].YearWeek > rows[j].YearWeek
	})
}

// LatestTesting returns per country the row with the latest date.
// Rows without a parsed date are ignored; on ties the first row wins.
func LatestTesting(rows []contracts.TestingRow) map[string]contracts.TestingRow {
	out := make(map[string]contracts.TestingRow)
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		if cur, ok := out[r.Country]; !ok || r.Date.After(cur.Date) {
			out[r.Country] = r
		}
	}
	return out
}

// LatestCases returns per country the row with the latest date
func LatestCases(rows []contracts.CaseRow) map[string]contracts.CaseRow {
	out := make(map[string]contracts.CaseRow)
	for _, r := range rows {
		if r.Date.IsZero() {
			continue
		}
		if cur, ok := out[r.Country]; !ok || r.Date.After(cur.Date) {
			out[r.Country] = r
		}
	}
	return out
}

// Snapshots combines the latest rows of both datasets, one per country in
// selection order. Missing values stay NaN.
func Snapshots(countries []string, testing []contracts.TestingRow, cases []contracts.CaseRow) []contracts.Snapshot {
	latestTests := LatestTesting(testing)
	latestCases := LatestCases(cases)

	out := make([]contracts.Snapshot, 0, len(countries))
	for _, c := range countries {
		s := contracts.Snapshot{
			Country:        c,
			PositivityRate: math.NaN(),
			Rate14Day:      math.NaN(),
		}
		if t, ok := latestTests[c]; ok {
			s.HasTesting = true
			s.TestingWeek = t.YearWeek
			s.TestingDate = t.Date
			s.PositivityRate = t.PositivityRate
		}
		if cr, ok := latestCases[c]; ok {
			s.HasCases = true
			s.CasesWeek = cr.YearWeek
			s.CasesDate = cr.Date
			s.Rate14Day = cr.Rate14Day
		}
		out = append(out, s)
	}
	return out
}

// Point is one chart observation
type Point struct {
	Country string    `json:"Country"`
	Date    time.Time `json:"date"`
	Value   float64   `json:"value"`
}

// PositivitySeries returns positivity as a fraction (percent / 100) per week.
// Rows without a date or value are left out.
func PositivitySeries(rows []contracts.TestingRow) []Point {
	out := make([]Point, 0, len(rows))
	for _, r := range rows {
		if r.Date.IsZero() || !finite(r.PositivityRate) {
			continue
		}
		out = append(out, Point{Country: r.Country, Date: r.Date, Value: r.PositivityRate / 100})
	}
	sortPoints(out)
	return out
}

// CaseRateSeries returns the 14-day notification rate per week
func CaseRateSeries(rows []contracts.CaseRow) []Point {
	out := make([]Point, 0, len(rows))
	for _, r := range rows {
		if r.Date.IsZero() || !finite(r.Rate14Day) {
			continue
		}
		out = append(out, Point{Country: r.Country, Date: r.Date, Value: r.Rate14Day})
	}
	sortPoints(out)
	return out
}

func sortPoints(points []Point) {
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
