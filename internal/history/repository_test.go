package history

import (
	"context"
	"fmt"
	"math"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/pkg/config"
	"github.com/wonny/covid-europe/pkg/database"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.New(ctx, &config.Config{Database: config.DatabaseConfig{URL: url, MaxConns: 2}})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := NewRepository(db.Pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestSaveAndLatest(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	country := fmt.Sprintf("Testland-%d", time.Now().UnixNano())
	base := time.Now().UTC().Truncate(time.Second)
	week := time.Date(2021, 2, 7, 0, 0, 0, 0, time.UTC)

	items := []contracts.Classification{
		{Country: country, ClassifiedAt: base.Add(-2 * time.Hour), WeekDate: week, PositivityRate: 5.1, Rate14Day: 200, Category: contracts.QuarantineHotel},
		{Country: country, ClassifiedAt: base.Add(-1 * time.Hour), WeekDate: week, PositivityRate: 3.2, Rate14Day: 60, Category: contracts.QuarantineHome},
		{Country: country, ClassifiedAt: base, WeekDate: week, PositivityRate: math.NaN(), Rate14Day: 10, Category: contracts.QuarantineHotel},
	}
	require.NoError(t, repo.Save(ctx, items))

	got, err := repo.Latest(ctx, country, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].ClassifiedAt.Equal(base))
	assert.True(t, math.IsNaN(got[0].PositivityRate), "NULL positivity must come back as NaN")
	assert.Equal(t, contracts.QuarantineHome, got[1].Category)
	assert.Equal(t, 60.0, got[1].Rate14Day)
	assert.True(t, got[1].WeekDate.Equal(week))
}

func TestSaveEmpty(t *testing.T) {
	repo := &Repository{}
	assert.NoError(t, repo.Save(context.Background(), nil))
}

func TestOrNaN(t *testing.T) {
	v := 2.5
	assert.Equal(t, 2.5, orNaN(&v))
	assert.True(t, math.IsNaN(orNaN(nil)))
}
