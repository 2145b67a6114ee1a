package contracts

import (
	"math"
	"time"
)

// Quarantine is the entry quarantine requirement for travellers from a country
type Quarantine string

const (
	QuarantineNone  Quarantine = "none"
	QuarantineHome  Quarantine = "home"
	QuarantineHotel Quarantine = "hotel"
)

// Snapshot holds the latest observation of each dataset for one country
// ⭐ SSOT: 국가별 최신값 스냅샷
type Snapshot struct {
	Country string `json:"country"`

	TestingWeek    string    `json:"testing_week,omitempty"`
	TestingDate    time.Time `json:"testing_date"`
	PositivityRate float64   `json:"positivity_rate"`
	HasTesting     bool      `json:"has_testing"`

	CasesWeek string    `json:"cases_week,omitempty"`
	CasesDate time.Time `json:"cases_date"`
	Rate14Day float64   `json:"rate_14_day"`
	HasCases  bool      `json:"has_cases"`
}

// Complete reports whether both datasets contributed a value
func (s Snapshot) Complete() bool {
	return s.HasTesting && s.HasCases
}

// Classification is one classified country, as recorded in history
type Classification struct {
	Country        string     `json:"country"`
	ClassifiedAt   time.Time  `json:"classified_at"`
	WeekDate       time.Time  `json:"week_date"`
	PositivityRate float64    `json:"positivity_rate"`
	Rate14Day      float64    `json:"rate_14_day"`
	Category       Quarantine `json:"category"`
}

// WeekDate returns the later of the two snapshot dates
func (s Snapshot) WeekDate() time.Time {
	if s.CasesDate.After(s.TestingDate) {
		return s.CasesDate
	}
	return s.TestingDate
}

// nullable maps NaN to nil for storage and JSON
func nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NullablePositivity returns the positivity rate or nil when unknown
func (c Classification) NullablePositivity() *float64 { return nullable(c.PositivityRate) }

// NullableRate14Day returns the case rate or nil when unknown
func (c Classification) NullableRate14Day() *float64 { return nullable(c.Rate14Day) }
