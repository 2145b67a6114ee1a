package contracts

import "time"

// TestingRow is a national weekly testing observation
type TestingRow struct {
	Country        string    `json:"country"`
	CountryCode    string    `json:"country_code"`
	YearWeek       string    `json:"year_week"`
	Date           time.Time `json:"date"`
	Level          string    `json:"level"`
	NewCases       float64   `json:"new_cases"`
	TestsDone      float64   `json:"tests_done"`
	Population     float64   `json:"population"`
	TestingRate    float64   `json:"testing_rate"`
	PositivityRate float64   `json:"positivity_rate"` // percent, 0 ~ 100
	Source         string    `json:"testing_data_source"`
}

// CaseRow is a national weekly case notification observation
type CaseRow struct {
	Country         string    `json:"country"`
	CountryCode     string    `json:"country_code"`
	Continent       string    `json:"continent"`
	YearWeek        string    `json:"year_week"`
	Date            time.Time `json:"date"`
	Indicator       string    `json:"indicator"`
	Population      float64   `json:"population"`
	WeeklyCount     float64   `json:"weekly_count"`
	Rate14Day       float64   `json:"rate_14_day"` // per 100 000 population
	CumulativeCount float64   `json:"cumulative_count"`
	Source          string    `json:"source"`
}
