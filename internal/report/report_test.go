package report

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/pkg/logger"
	"github.com/wonny/covid-europe/pkg/metrics"
)

type stubLoader struct {
	tables map[contracts.Category]*contracts.Table
	err    error
	calls  int
}

func (s *stubLoader) Load(ctx context.Context, category contracts.Category) (*contracts.Table, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.tables[category], nil
}

func newStubLoader() *stubLoader {
	tests := []contracts.Record{
		{"country": "Germany", "year_week": "2021-W04", "level": "national", "positivity_rate": "8.2"},
		{"country": "Germany", "year_week": "2021-W05", "level": "national", "positivity_rate": "3.5"},
		{"country": "Norway", "year_week": "2021-W05", "level": "national", "positivity_rate": "1.2"},
		{"country": "Norway", "year_week": "2021-W05", "level": "subnational", "positivity_rate": "9.9"},
		{"country": "Malta", "year_week": "2021-W05", "level": "national", "positivity_rate": "2.0"},
	}
	cases := []contracts.Record{
		{"country": "Germany", "year_week": "2021-05", "indicator": "cases", "rate_14_day": "180.5"},
		{"country": "Germany", "year_week": "2021-04", "indicator": "cases", "rate_14_day": "210.3"},
		{"country": "Norway", "year_week": "2021-05", "indicator": "cases", "rate_14_day": "20.0"},
		{"country": "Norway", "year_week": "2021-05", "indicator": "deaths", "rate_14_day": "0.4"},
		{"country": "Iceland", "year_week": "2021-05", "indicator": "cases", "rate_14_day": "3.1"},
	}
	now := time.Now()
	return &stubLoader{tables: map[contracts.Category]*contracts.Table{
		contracts.CategoryTesting: contracts.NewTable(contracts.CategoryTesting, nil, tests, now),
		contracts.CategoryCases:   contracts.NewTable(contracts.CategoryCases, nil, cases, now),
	}}
}

func TestBuild(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2021, 2, 10, 9, 0, 0, 0, time.UTC))
	b := NewBuilder(newStubLoader(), logger.Nop(), WithClock(clock))

	r, err := b.Build(context.Background(), []string{"Germany", "Norway"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Germany", "Norway"}, r.Countries)
	assert.Equal(t, clock.Now(), r.GeneratedAt)

	require.Len(t, r.Rules, 2)
	assert.Equal(t, contracts.QuarantineHotel, r.Rules[0].Category)
	assert.Equal(t, "Quarantine at hotel required.", r.Rules[0].Message)
	assert.Equal(t, contracts.QuarantineNone, r.Rules[1].Category)
	assert.Equal(t, 1.2, r.Rules[1].Snapshot.PositivityRate)

	// national rows only, newest first
	require.Len(t, r.Testing, 3)
	assert.Equal(t, "2021-W05", r.Testing[0].YearWeek)
	assert.Equal(t, "2021-W04", r.Testing[2].YearWeek)
	for _, row := range r.Testing {
		assert.Equal(t, "national", row.Level)
	}

	require.Len(t, r.Cases, 3)
	for _, row := range r.Cases {
		assert.Equal(t, "cases", row.Indicator)
	}

	assert.Len(t, r.Positivity, 3)
	assert.Len(t, r.CaseRate, 3)
}

func TestBuildEmptySelection(t *testing.T) {
	loader := newStubLoader()
	b := NewBuilder(loader, logger.Nop())

	for _, sel := range [][]string{nil, {}, {" ", ""}} {
		r, err := b.Build(context.Background(), sel)
		assert.ErrorIs(t, err, ErrNoCountries)
		assert.Nil(t, r)
	}
	assert.Zero(t, loader.calls, "empty selection must not fetch")
}

func TestBuildCountryWithoutData(t *testing.T) {
	b := NewBuilder(newStubLoader(), logger.Nop())

	r, err := b.Build(context.Background(), []string{"Malta", "Iceland", "Atlantis"})
	require.NoError(t, err)

	require.Len(t, r.Rules, 3)
	for _, rule := range r.Rules {
		assert.True(t, rule.NoData, rule.Country)
		assert.Equal(t, NoDataMessage, rule.Message)
		assert.Empty(t, rule.Category)
	}
	assert.True(t, math.IsNaN(r.Rules[2].Snapshot.Rate14Day))
	assert.Empty(t, r.Classifications())
}

func TestBuildLoaderError(t *testing.T) {
	loader := newStubLoader()
	loader.err = errors.New("boom")
	b := NewBuilder(loader, logger.Nop())

	_, err := b.Build(context.Background(), []string{"Germany"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load testing data")
}

func TestBuildMetrics(t *testing.T) {
	m := metrics.New()
	b := NewBuilder(newStubLoader(), logger.Nop(), WithMetrics(m))

	_, err := b.Build(context.Background(), []string{"Germany", "Norway", "Malta"})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Classifications.WithLabelValues("hotel")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Classifications.WithLabelValues("none")))
	assert.Greater(t, testutil.ToFloat64(m.LastRunTimestamp), 0.0)
}

func TestClassifications(t *testing.T) {
	clock := clockwork.NewFakeClock()
	b := NewBuilder(newStubLoader(), logger.Nop(), WithClock(clock))

	r, err := b.Build(context.Background(), []string{"Norway"})
	require.NoError(t, err)

	items := r.Classifications()
	require.Len(t, items, 1)
	assert.Equal(t, "Norway", items[0].Country)
	assert.Equal(t, contracts.QuarantineNone, items[0].Category)
	assert.Equal(t, time.Date(2021, 2, 7, 0, 0, 0, 0, time.UTC), items[0].WeekDate)
	assert.Equal(t, clock.Now(), items[0].ClassifiedAt)
}

func TestCountries(t *testing.T) {
	b := NewBuilder(newStubLoader(), logger.Nop())

	got, err := b.Countries(context.Background())
	require.NoError(t, err)
	// Iceland only reports cases
	assert.Equal(t, []string{"Germany", "Malta", "Norway"}, got)
}

func TestCountriesLoadError(t *testing.T) {
	loader := newStubLoader()
	loader.err = errors.New("boom")
	b := NewBuilder(loader, logger.Nop())

	_, err := b.Countries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load testing data")
	assert.Equal(t, 1, loader.calls)
}

func TestNormalizeSelection(t *testing.T) {
	got := NormalizeSelection([]string{" Norway", "Germany", "", "Norway", "Sweden "})
	assert.Equal(t, []string{"Norway", "Germany", "Sweden"}, got)
}
