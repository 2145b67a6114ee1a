package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/internal/quarantine"
	"github.com/wonny/covid-europe/internal/transform"
	"github.com/wonny/covid-europe/pkg/logger"
	"github.com/wonny/covid-europe/pkg/metrics"
)

// ErrNoCountries is returned for an empty selection
var ErrNoCountries = errors.New("no countries selected")

// NoCountriesMessage is shown instead of tables for an empty selection
const NoCountriesMessage = "Please select at least one country."

// NoDataMessage replaces the rule of a country lacking recent values
const NoDataMessage = "No recent data available."

// Rule is the quarantine requirement of one selected country
type Rule struct {
	Country  string               `json:"country"`
	Category contracts.Quarantine `json:"category,omitempty"`
	Message  string               `json:"message"`
	NoData   bool                 `json:"no_data"`
	Snapshot contracts.Snapshot   `json:"snapshot"`
}

// Report is everything shown for one country selection
type Report struct {
	Countries   []string  `json:"countries"`
	GeneratedAt time.Time `json:"generated_at"`

	Rules []Rule `json:"rules"`

	Testing []contracts.TestingRow `json:"testing"`
	Cases   []contracts.CaseRow    `json:"cases"`

	Positivity []transform.Point `json:"positivity"`
	CaseRate   []transform.Point `json:"case_rate"`
}

// Classifications returns the classified rules as history entries
func (r *Report) Classifications() []contracts.Classification {
	out := make([]contracts.Classification, 0, len(r.Rules))
	for _, rule := range r.Rules {
		if rule.NoData {
			continue
		}
		out = append(out, contracts.Classification{
			Country:        rule.Country,
			ClassifiedAt:   r.GeneratedAt,
			WeekDate:       rule.Snapshot.WeekDate(),
			PositivityRate: rule.Snapshot.PositivityRate,
			Rate14Day:      rule.Snapshot.Rate14Day,
			Category:       rule.Category,
		})
	}
	return out
}

// Builder runs the fetch, filter and transform pipeline for a selection
// ⭐ SSOT: 리포트 생성 파이프라인
type Builder struct {
	loader  contracts.DatasetLoader
	logger  *logger.Logger
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

// Option configures a Builder
type Option func(*Builder)

// WithClock replaces the wall clock (tests)
func WithClock(clock clockwork.Clock) Option {
	return func(b *Builder) { b.clock = clock }
}

// WithMetrics counts classifications
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Builder) { b.metrics = m }
}

// NewBuilder creates a report builder
func NewBuilder(loader contracts.DatasetLoader, log *logger.Logger, opts ...Option) *Builder {
	b := &Builder{
		loader: loader,
		logger: log,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the report of the selected countries
func (b *Builder) Build(ctx context.Context, countries []string) (*Report, error) {
	selection := NormalizeSelection(countries)
	if len(selection) == 0 {
		return nil, ErrNoCountries
	}

	testingTable, err := b.loader.Load(ctx, contracts.CategoryTesting)
	if err != nil {
		return nil, fmt.Errorf("load testing data: %w", err)
	}
	casesTable, err := b.loader.Load(ctx, contracts.CategoryCases)
	if err != nil {
		return nil, fmt.Errorf("load case data: %w", err)
	}

	testing := transform.NationalTesting(testingTable.Loc(selection...))
	cases := transform.WeeklyCases(casesTable.Loc(selection...))

	r := &Report{
		Countries:   selection,
		GeneratedAt: b.clock.Now(),
		Positivity:  transform.PositivitySeries(testing),
		CaseRate:    transform.CaseRateSeries(cases),
	}

	for _, snap := range transform.Snapshots(selection, testing, cases) {
		rule := Rule{Country: snap.Country, Snapshot: snap}
		if !snap.Complete() {
			rule.NoData = true
			rule.Message = NoDataMessage
			b.logger.WithField("country", snap.Country).Warn("Country has no recent data")
		} else {
			rule.Category = quarantine.ClassifySnapshot(snap)
			rule.Message = quarantine.Message(rule.Category)
			if b.metrics != nil {
				b.metrics.Classifications.WithLabelValues(string(rule.Category)).Inc()
			}
		}
		r.Rules = append(r.Rules, rule)
	}

	transform.SortTestingDesc(testing)
	transform.SortCasesDesc(cases)
	r.Testing = testing
	r.Cases = cases

	if b.metrics != nil {
		b.metrics.LastRunTimestamp.Set(float64(r.GeneratedAt.Unix()))
	}

	b.logger.WithFields(map[string]interface{}{
		"countries":    len(selection),
		"testing_rows": len(testing),
		"case_rows":    len(cases),
	}).Debug("Report built")

	return r, nil
}

// Countries lists the countries of the testing dataset, sorted
func (b *Builder) Countries(ctx context.Context) ([]string, error) {
	table, err := b.loader.Load(ctx, contracts.CategoryTesting)
	if err != nil {
		return nil, fmt.Errorf("load %s data: %w", contracts.CategoryTesting, err)
	}
	return table.Countries(), nil
}

// NormalizeSelection trims names and drops blanks and duplicates, keeping order
func NormalizeSelection(countries []string) []string {
	seen := make(map[string]struct{}, len(countries))
	out := make([]string, 0, len(countries))
	for _, c := range countries {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
