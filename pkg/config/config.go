package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultECDCBaseURL is the ECDC open-data endpoint for COVID-19 datasets
const DefaultECDCBaseURL = "https://opendata.ecdc.europa.eu/covid19/"

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Upstream data source
	ECDC ECDCConfig

	// HTTP client
	HTTP HTTPConfig

	// Dataset memoization
	Cache CacheConfig

	// Redis (optional shared cache + rate limiting)
	Redis RedisConfig

	// Database (optional classification history)
	Database DatabaseConfig

	// Countries selected when none are given
	DefaultCountries []string

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled  bool
	MetricsTextfile string
}

// ECDCConfig holds ECDC open-data configuration
type ECDCConfig struct {
	BaseURL string
}

// HTTPConfig holds outbound HTTP settings
type HTTPConfig struct {
	Timeout    time.Duration
	MaxRetries int     // 0 = 재시도 없음
	RateLimit  float64 // requests per second, 0 = unlimited
}

// CacheConfig holds dataset memoization settings
type CacheConfig struct {
	TTL time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Enabled reports whether a database was configured
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// Load reads configuration from environment variables, after trying the
// default .env locations
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()
	return fromEnv()
}

// LoadFile reads configuration from the given env file, then the environment.
// Variables already present in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	if err := godotenv.Load(path); err != nil {
		return nil, fmt.Errorf("load env file %s: %w", path, err)
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Env: getEnv("ENV", "development"),

		ECDC: ECDCConfig{
			BaseURL: getEnv("ECDC_BASE_URL", DefaultECDCBaseURL),
		},

		HTTP: HTTPConfig{
			Timeout:    getEnvAsDuration("HTTP_TIMEOUT", "30s"),
			MaxRetries: getEnvAsInt("HTTP_MAX_RETRIES", 0),
			RateLimit:  getEnvAsFloat("HTTP_RATE_LIMIT", 0),
		},

		Cache: CacheConfig{
			TTL: getEnvAsDuration("CACHE_TTL", "1h"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 4),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		DefaultCountries: getEnvAsList("DEFAULT_COUNTRIES", []string{"Germany"}),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		// Monitoring
		MetricsEnabled:  getEnvAsBool("METRICS_ENABLED", false),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if err := ValidateEnv(c.Env); err != nil {
		return err
	}

	if c.ECDC.BaseURL == "" {
		return fmt.Errorf("ECDC_BASE_URL is required")
	}
	if !strings.HasSuffix(c.ECDC.BaseURL, "/") {
		c.ECDC.BaseURL += "/"
	}

	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("HTTP_MAX_RETRIES must not be negative")
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative")
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if c.MetricsEnabled && c.MetricsTextfile == "" {
		return fmt.Errorf("METRICS_ENABLED is true but METRICS_TEXTFILE is not set")
	}

	return nil
}

// ValidateEnv checks an environment name
func ValidateEnv(env string) error {
	switch env {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

// getEnvAsList splits a comma separated value, dropping blanks
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
