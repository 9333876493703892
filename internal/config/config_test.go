package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var configKeys = []string{
	"TELEGRAM_BOT_TOKEN", "OWNER_CHAT_ID", "BOT_DEBUG", "STORAGE_BACKEND", "DATABASE_URL",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX", "STATUS_POLICY",
	"TIMEZONE", "METRICS_TEXTFILE", "LOG_LEVEL",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %s, want sqlite", cfg.StorageBackend)
	}
	if cfg.DatabaseURL != "team-tracker.db" {
		t.Errorf("DatabaseURL = %s", cfg.DatabaseURL)
	}
	if cfg.RedisKeyPrefix != "team-tracker:" {
		t.Errorf("RedisKeyPrefix = %s", cfg.RedisKeyPrefix)
	}
	if cfg.StatusPolicy != PolicyOverwrite {
		t.Errorf("StatusPolicy = %s, want overwrite", cfg.StatusPolicy)
	}
	if cfg.LogLevel != logrus.InfoLevel {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.Location != time.Local {
		t.Errorf("Location = %s, want Local", cfg.Location)
	}
	if cfg.OwnerChatID != 0 || cfg.BotDebug {
		t.Errorf("OwnerChatID = %d, BotDebug = %v", cfg.OwnerChatID, cfg.BotDebug)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("OWNER_CHAT_ID", "123456789")
	t.Setenv("BOT_DEBUG", "true")
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("STATUS_POLICY", "rederive")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.TelegramToken != "token" || cfg.OwnerChatID != 123456789 || !cfg.BotDebug {
		t.Errorf("bot settings = %q, %d, %v", cfg.TelegramToken, cfg.OwnerChatID, cfg.BotDebug)
	}
	if cfg.StorageBackend != BackendRedis || cfg.RedisDB != 2 {
		t.Errorf("storage = %s db %d", cfg.StorageBackend, cfg.RedisDB)
	}
	if cfg.StatusPolicy != PolicyRederive {
		t.Errorf("StatusPolicy = %s", cfg.StatusPolicy)
	}
	if cfg.Location != time.UTC {
		t.Errorf("Location = %s", cfg.Location)
	}
	if cfg.LogLevel != logrus.DebugLevel {
		t.Errorf("LogLevel = %s", cfg.LogLevel)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"STORAGE_BACKEND", "postgres"},
		{"STATUS_POLICY", "latest"},
		{"TIMEZONE", "Mars/Olympus"},
		{"LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%s should fail", tt.key, tt.value)
			}
		})
	}
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("TT_INT", "twelve")
	t.Setenv("TT_BOOL", "maybe")

	if got := getEnvAsInt("TT_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt = %d, want fallback 7", got)
	}
	if got := getEnvAsBool("TT_BOOL", true); !got {
		t.Error("getEnvAsBool should fall back to true")
	}
}

func TestNewCircuitBreaker_TripsAfterThreeFailures(t *testing.T) {
	cb := NewCircuitBreaker("test", time.Minute)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		cb.Execute(func() (interface{}, error) { return nil, boom })
	}

	if cb.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %s, want open", cb.State())
	}
	if _, err := cb.Execute(func() (interface{}, error) { return nil, nil }); !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Execute on open breaker = %v, want ErrOpenState", err)
	}
}
