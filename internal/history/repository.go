package history

import (
	"context"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/covid-europe/internal/contracts"
)

// DefaultLimit is the number of entries listed when none is given
const DefaultLimit = 10

const schemaSQL = `
	CREATE SCHEMA IF NOT EXISTS covid;

	CREATE TABLE IF NOT EXISTS covid.classifications (
		id              BIGSERIAL PRIMARY KEY,
		country         TEXT        NOT NULL,
		classified_at   TIMESTAMPTZ NOT NULL,
		week_date       DATE        NOT NULL,
		positivity_rate DOUBLE PRECISION,
		rate_14_day     DOUBLE PRECISION,
		category        TEXT        NOT NULL CHECK (category IN ('none', 'home', 'hotel'))
	);

	CREATE INDEX IF NOT EXISTS classifications_country_time_idx
		ON covid.classifications (country, classified_at DESC);`

// Repository stores quarantine classifications
// ⭐ SSOT: 분류 이력 저장소
type Repository struct {
	pool *pgxpool.Pool
}

var _ contracts.HistoryRepository = (*Repository)(nil)

// NewRepository creates a new repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the schema and table when missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

// Save inserts classifications in one batch
func (r *Repository) Save(ctx context.Context, items []contracts.Classification) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO covid.classifications
			(country, classified_at, week_date, positivity_rate, rate_14_day, category)
		VALUES ($1, $2, $3, $4, $5, $6)`

	batch := &pgx.Batch{}
	for _, c := range items {
		batch.Queue(query, c.Country, c.ClassifiedAt, c.WeekDate,
			c.NullablePositivity(), c.NullableRate14Day(), string(c.Category))
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert classification: %w", err)
		}
	}

	return nil
}

// Latest lists the most recent classifications of a country, newest first
func (r *Repository) Latest(ctx context.Context, country string, limit int) ([]contracts.Classification, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
		SELECT country, classified_at, week_date, positivity_rate, rate_14_day, category
		FROM covid.classifications
		WHERE country = $1
		ORDER BY classified_at DESC, id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, country, limit)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	var out []contracts.Classification
	for rows.Next() {
		var (
			c        contracts.Classification
			pos      *float64
			rate     *float64
			category string
		)
		if err := rows.Scan(&c.Country, &c.ClassifiedAt, &c.WeekDate, &pos, &rate, &category); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		c.PositivityRate = orNaN(pos)
		c.Rate14Day = orNaN(rate)
		c.Category = contracts.Quarantine(category)
		out = append(out, c)
	}

	return out, rows.Err()
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
