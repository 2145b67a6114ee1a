package ecdc

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/covid-europe/internal/contracts"
)

func TestParseTesting(t *testing.T) {
	now := time.Date(2021, 2, 10, 12, 0, 0, 0, time.UTC)
	table, err := Parse(contracts.CategoryTesting, []byte(testingCSV), now)
	require.NoError(t, err)

	assert.Equal(t, contracts.CategoryTesting, table.Category)
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []string{"Germany", "Norway"}, table.Countries())
	assert.Equal(t, now, table.FetchedAt)

	norway := table.Loc("Norway")
	require.Len(t, norway, 2)
	assert.True(t, math.IsNaN(norway[0].Float("positivity_rate")), "blank cell must parse as NaN")
	assert.Equal(t, "subnational", norway[1].Get("level"))
}

func TestParseKeepsRequestedOrder(t *testing.T) {
	table, err := Parse(contracts.CategoryCases, []byte(casesCSV), time.Now())
	require.NoError(t, err)

	rows := table.Loc("Norway", "Germany", "Atlantis")
	require.Len(t, rows, 3)
	assert.Equal(t, "Norway", rows[0].Get("country"))
	assert.Equal(t, "Germany", rows[1].Get("country"))
	assert.False(t, table.Has("Atlantis"))
}

func TestParseBOMAndShortRows(t *testing.T) {
	data := "\xEF\xBB\xBFcountry,year_week,rate_14_day\nItaly,2021-05\n"
	table, err := Parse(contracts.CategoryCases, []byte(data), time.Now())
	require.NoError(t, err)

	require.Equal(t, 1, table.Len())
	assert.Equal(t, "country", table.Columns[0])
	assert.Equal(t, "", table.Rows[0].Get("rate_14_day"))
	assert.True(t, math.IsNaN(table.Rows[0].Float("rate_14_day")))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"no country column", "year_week,rate_14_day\n2021-05,12\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(contracts.CategoryCases, []byte(tt.data), time.Now())
			assert.Error(t, err)
		})
	}
}
