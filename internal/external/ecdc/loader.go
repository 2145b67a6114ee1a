package ecdc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/pkg/logger"
	"github.com/wonny/covid-europe/pkg/metrics"
	"github.com/wonny/covid-europe/pkg/redis"
)

// Downloader fetches the raw CSV of a category
type Downloader interface {
	Download(ctx context.Context, category contracts.Category) ([]byte, error)
}

type entry struct {
	table     *contracts.Table
	expiresAt time.Time
}

// Loader memoizes parsed datasets per category for a fixed TTL.
// An optional Redis cache shares the raw CSV between processes.
// ⭐ SSOT: 데이터셋 캐시는 여기서만
type Loader struct {
	source  Downloader
	logger  *logger.Logger
	ttl     time.Duration
	clock   clockwork.Clock
	remote  *redis.Cache
	metrics *metrics.Metrics

	mu      sync.Mutex
	entries map[contracts.Category]entry
}

var _ contracts.DatasetLoader = (*Loader)(nil)

// Option configures a Loader
type Option func(*Loader)

// WithClock replaces the wall clock (tests)
func WithClock(clock clockwork.Clock) Option {
	return func(l *Loader) { l.clock = clock }
}

// WithRemoteCache adds a Redis backed second level
func WithRemoteCache(cache *redis.Cache) Option {
	return func(l *Loader) { l.remote = cache }
}

// WithMetrics records fetch and cache metrics
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// NewLoader creates a memoizing loader over source
func NewLoader(source Downloader, log *logger.Logger, ttl time.Duration, opts ...Option) *Loader {
	l := &Loader{
		source:  source,
		logger:  log,
		ttl:     ttl,
		clock:   clockwork.NewRealClock(),
		entries: make(map[contracts.Category]entry),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the table of a category, downloading it when the memo is
// empty or expired
func (l *Loader) Load(ctx context.Context, category contracts.Category) (*contracts.Table, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if e, ok := l.entries[category]; ok && now.Before(e.expiresAt) {
		l.count(category, "hit")
		return e.table, nil
	}
	l.count(category, "miss")

	start := l.clock.Now()
	table, err := l.fetch(ctx, category)
	if err != nil {
		if l.metrics != nil {
			l.metrics.DatasetFetches.WithLabelValues(string(category), "error").Inc()
		}
		return nil, err
	}

	if l.metrics != nil {
		l.metrics.DatasetFetches.WithLabelValues(string(category), "success").Inc()
		l.metrics.DatasetRows.WithLabelValues(string(category)).Set(float64(table.Len()))
		l.metrics.FetchDuration.WithLabelValues(string(category)).Observe(l.clock.Since(start).Seconds())
	}

	l.entries[category] = entry{table: table, expiresAt: l.clock.Now().Add(l.ttl)}

	l.logger.WithFields(map[string]interface{}{
		"category":  string(category),
		"rows":      table.Len(),
		"countries": len(table.Countries()),
	}).Info("Dataset loaded")

	return table, nil
}

// Invalidate drops memoized tables. No arguments drops everything.
func (l *Loader) Invalidate(categories ...contracts.Category) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(categories) == 0 {
		l.entries = make(map[contracts.Category]entry)
		return
	}
	for _, c := range categories {
		delete(l.entries, c)
	}
}

// fetch reads the raw CSV from Redis or the source, then parses it
func (l *Loader) fetch(ctx context.Context, category contracts.Category) (*contracts.Table, error) {
	key := redis.DatasetKey(string(category))

	if l.remote != nil {
		data, ok, err := l.remote.Get(ctx, key)
		if err != nil {
			l.logger.WithError(err).Warn("Redis dataset lookup failed")
		} else if ok {
			table, err := Parse(category, data, l.clock.Now())
			if err == nil {
				l.logger.WithField("category", string(category)).Debug("Dataset served from Redis")
				return table, nil
			}
			l.logger.WithError(err).Warn("Discarding unparsable cached dataset")
		}
	}

	data, err := l.source.Download(ctx, category)
	if err != nil {
		return nil, err
	}

	table, err := Parse(category, data, l.clock.Now())
	if err != nil {
		return nil, err
	}

	if l.remote != nil {
		if err := l.remote.Set(ctx, key, data, l.ttl); err != nil {
			l.logger.WithError(err).Warn("Redis dataset store failed")
		}
	}

	return table, nil
}

func (l *Loader) count(category contracts.Category, result string) {
	if l.metrics != nil {
		l.metrics.DatasetCache.WithLabelValues(string(category), result).Inc()
	}
}
