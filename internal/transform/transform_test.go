package transform

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/covid-europe/internal/contracts"
)

func testingRecords() []contracts.Record {
	return []contracts.Record{
		{"country": "Germany", "year_week": "2021-W04", "level": "national", "positivity_rate": "8.2", "population": "83166711"},
		{"country": "Germany", "year_week": "2021-W05", "level": "national", "positivity_rate": "6.666", "population": "83166711"},
		{"country": "Germany", "year_week": "2021-W05", "level": "subnational", "positivity_rate": "3.1", "population": "1000"},
		{"country": "Norway", "year_week": "2021-W05", "level": "national", "positivity_rate": "", "population": "5367580"},
		{"country": "Norway", "year_week": "bogus", "level": "national", "positivity_rate": "1.0", "population": "5367580"},
	}
}

func caseRecords() []contracts.Record {
	return []contracts.Record{
		{"country": "Germany", "year_week": "2021-04", "indicator": "cases", "rate_14_day": "210.3"},
		{"country": "Germany", "year_week": "2021-05", "indicator": "cases", "rate_14_day": "180.5"},
		{"country": "Germany", "year_week": "2021-05", "indicator": "deaths", "rate_14_day": "120.1"},
		{"country": "Norway", "year_week": "2021-05", "indicator": "cases", "rate_14_day": "60.2"},
	}
}

func TestNationalTesting(t *testing.T) {
	rows := NationalTesting(testingRecords())

	require.Len(t, rows, 4)
	for _, r := range rows {
		assert.Equal(t, "national", r.Level)
	}
	assert.Equal(t, date(2021, time.February, 7), rows[1].Date)
	assert.True(t, rows[3].Date.IsZero(), "unparsable week keeps a zero date")
	assert.True(t, math.IsNaN(rows[2].PositivityRate))
}

func TestWeeklyCases(t *testing.T) {
	rows := WeeklyCases(caseRecords())

	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, "cases", r.Indicator)
	}
}

func TestSortDesc(t *testing.T) {
	tests := NationalTesting(testingRecords())
	SortTestingDesc(tests)
	weeks := make([]string, len(tests))
	for i, r := range tests {
		weeks[i] = r.YearWeek
	}
	if diff := cmp.Diff([]string{"bogus", "2021-W05", "2021-W05", "2021-W04"}, weeks); diff != "" {
		t.Errorf("testing order mismatch (-want +got):\n%s", diff)
	}

	cases := WeeklyCases(caseRecords())
	SortCasesDesc(cases)
	assert.Equal(t, "2021-05", cases[0].YearWeek)
	assert.Equal(t, "2021-04", cases[len(cases)-1].YearWeek)
}

func TestLatest(t *testing.T) {
	latest := LatestTesting(NationalTesting(testingRecords()))

	require.Contains(t, latest, "Germany")
	assert.Equal(t, "2021-W05", latest["Germany"].YearWeek)
	assert.Equal(t, 6.666, latest["Germany"].PositivityRate)
	assert.Equal(t, "2021-W05", latest["Norway"].YearWeek, "row with unparsable week is ignored")

	latestCases := LatestCases(WeeklyCases(caseRecords()))
	assert.Equal(t, 180.5, latestCases["Germany"].Rate14Day)
}

func TestSnapshots(t *testing.T) {
	snaps := Snapshots(
		[]string{"Norway", "Germany", "Atlantis"},
		NationalTesting(testingRecords()),
		WeeklyCases(caseRecords()),
	)

	want := []contracts.Snapshot{
		{
			Country: "Norway", TestingWeek: "2021-W05", TestingDate: date(2021, time.February, 7),
			PositivityRate: math.NaN(), HasTesting: true,
			CasesWeek: "2021-05", CasesDate: date(2021, time.February, 7), Rate14Day: 60.2, HasCases: true,
		},
		{
			Country: "Germany", TestingWeek: "2021-W05", TestingDate: date(2021, time.February, 7),
			PositivityRate: 6.666, HasTesting: true,
			CasesWeek: "2021-05", CasesDate: date(2021, time.February, 7), Rate14Day: 180.5, HasCases: true,
		},
		{Country: "Atlantis", PositivityRate: math.NaN(), Rate14Day: math.NaN()},
	}

	if diff := cmp.Diff(want, snaps, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("Snapshots mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, snaps[2].Complete())
}

func TestSeries(t *testing.T) {
	pos := PositivitySeries(NationalTesting(testingRecords()))

	// NaN positivity and zero dates are dropped
	require.Len(t, pos, 2)
	assert.Equal(t, date(2021, time.January, 31), pos[0].Date)
	assert.InDelta(t, 0.082, pos[0].Value, 1e-9)
	assert.InDelta(t, 0.06666, pos[1].Value, 1e-9)

	rates := CaseRateSeries(WeeklyCases(caseRecords()))
	require.Len(t, rates, 3)
	assert.Equal(t, 210.3, rates[0].Value)
}
