package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/covid-europe/internal/contracts"
	"github.com/wonny/covid-europe/pkg/database"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Configuration and backend connectivity check",
	Long: `Shows the effective configuration and checks the optional backends.

이 명령어는:
- config 로드 결과 표시
- Redis Ping (REDIS_ENABLED=true 일 때)
- PostgreSQL Health Check (DATABASE_URL 설정 시)
- --probe: ECDC 데이터셋 다운로드 및 행 수 표시

Example:
  go run ./cmd/covid status
  go run ./cmd/covid status --probe`,
	RunE: runStatus,
}

var (
	// Status flags
	statusProbe bool
)

func init() {
	rootCmd.AddCommand(statusCmd)

	// Flags
	statusCmd.Flags().BoolVar(&statusProbe, "probe", false, "download both ECDC datasets")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	cfg := a.cfg

	PrintHeader(out, "covid-europe status")
	PrintKeyValue(out, "Environment", cfg.Env, 16)
	PrintKeyValue(out, "ECDC endpoint", cfg.ECDC.BaseURL, 16)
	PrintKeyValue(out, "HTTP timeout", cfg.HTTP.Timeout.String(), 16)
	PrintKeyValue(out, "HTTP retries", fmt.Sprintf("%d", cfg.HTTP.MaxRetries), 16)
	PrintKeyValue(out, "Cache TTL", cfg.Cache.TTL.String(), 16)
	PrintKeyValue(out, "Countries", strings.Join(cfg.DefaultCountries, ", "), 16)
	PrintSeparator(out)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if a.redis.Enabled() {
		if err := a.redis.Ping(ctx); err != nil {
			PrintError(out, fmt.Sprintf("Redis: %v", err))
		} else {
			PrintSuccess(out, fmt.Sprintf("Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port))
		}
	} else {
		PrintWarning(out, "Redis: disabled")
	}

	checkDatabase(ctx, out, a)

	if statusProbe {
		probeDatasets(cmd.Context(), out, a)
	}

	return nil
}

func checkDatabase(ctx context.Context, out io.Writer, a *app) {
	db, err := database.New(ctx, a.cfg)
	if errors.Is(err, database.ErrNotConfigured) {
		PrintWarning(out, "Database: not configured (history disabled)")
		return
	}
	if err != nil {
		PrintError(out, fmt.Sprintf("Database: %v", err))
		return
	}
	a.db = db

	status, err := db.HealthCheck(ctx)
	if err != nil {
		PrintError(out, fmt.Sprintf("Database: %v", err))
		return
	}
	PrintSuccess(out, fmt.Sprintf("Database: %s (%v, %d/%d conns)",
		maskPassword(a.cfg.Database.URL), status.ResponseTime.Round(time.Millisecond), status.TotalConns, status.MaxConns))
}

func probeDatasets(ctx context.Context, out io.Writer, a *app) {
	for _, category := range []contracts.Category{contracts.CategoryTesting, contracts.CategoryCases} {
		start := time.Now()
		table, err := a.loader.Load(ctx, category)
		if err != nil {
			PrintError(out, fmt.Sprintf("ECDC %s: %v", category, err))
			continue
		}
		PrintSuccess(out, fmt.Sprintf("ECDC %s: %d rows, %d countries (%v)",
			category, table.Len(), len(table.Countries()), time.Since(start).Round(time.Millisecond)))
	}
}
