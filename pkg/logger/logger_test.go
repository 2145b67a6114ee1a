package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/covid-europe/pkg/config"
)

func TestNewSetsGlobalLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
	}{
		{"debug level", "debug", zerolog.DebugLevel},
		{"info level", "info", zerolog.InfoLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"error level", "error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Env: "development", LogLevel: tt.level, LogFormat: "json"}
			if l := NewWithWriter(cfg, &bytes.Buffer{}); l == nil {
				t.Fatal("Expected logger to be created")
			}

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestJSONOutputCarriesEnv(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Env: "staging", LogLevel: "debug", LogFormat: "json"}

	NewWithWriter(cfg, &buf).Info("dataset loaded")

	entry := decode(t, &buf)
	if entry["env"] != "staging" {
		t.Errorf("Expected env staging, got %v", entry["env"])
	}
	if entry["message"] != "dataset loaded" {
		t.Errorf("Expected message 'dataset loaded', got %v", entry["message"])
	}
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Config{Env: "development", LogLevel: "info", LogFormat: "console"}

	NewWithWriter(cfg, &buf).Warn("cache miss")

	if !strings.Contains(buf.String(), "cache miss") {
		t.Errorf("Expected console output to contain message, got %q", buf.String())
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf)}

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{"debug", func() { logger.Debug("debug message") }, "debug message", "debug"},
		{"info", func() { logger.Info("info message") }, "info message", "info"},
		{"warn", func() { logger.Warn("warn message") }, "warn message", "warn"},
		{"error", func() { logger.Error("error message") }, "error message", "error"},
		{"infof", func() { logger.Infof("rows: %d", 42) }, "rows: 42", "info"},
		{"errorf", func() { logger.Errorf("fetch %s failed", "testing") }, "fetch testing failed", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			entry := decode(t, &buf)
			if entry["level"] != tt.wantLevel {
				t.Errorf("Expected level %q, got %q", tt.wantLevel, entry["level"])
			}
			if entry["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, entry["message"])
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf)}

	logger.WithFields(map[string]interface{}{
		"category": "testing",
		"rows":     1200,
	}).WithField("country", "Germany").Info("dataset parsed")

	entry := decode(t, &buf)
	if entry["category"] != "testing" {
		t.Errorf("Expected category testing, got %v", entry["category"])
	}
	if entry["rows"] != float64(1200) {
		t.Errorf("Expected rows 1200, got %v", entry["rows"])
	}
	if entry["country"] != "Germany" {
		t.Errorf("Expected country Germany, got %v", entry["country"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf)}

	logger.WithError(errors.New("connection refused")).Error("fetch failed")

	entry := decode(t, &buf)
	if entry["error"] != "connection refused" {
		t.Errorf("Expected error 'connection refused', got %v", entry["error"])
	}
}

func TestNop(t *testing.T) {
	// must not panic
	Nop().WithField("k", "v").Info("discarded")
}
