package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"

	PolicyOverwrite = "overwrite"
	PolicyRederive  = "rederive"
)

type Config struct {
	TelegramToken string
	OwnerChatID   int64
	BotDebug      bool

	StorageBackend string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	StatusPolicy    string
	Location        *time.Location
	MetricsTextfile string
	LogLevel        logrus.Level
}

var instance *Config
var once sync.Once

// GetConfig loads the configuration once per process. Invalid values are fatal.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("invalid configuration: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		OwnerChatID:     getEnvAsInt("OWNER_CHAT_ID", 0),
		BotDebug:        getEnvAsBool("BOT_DEBUG", false),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", BackendSQLite)),
		DatabaseURL:     getEnv("DATABASE_URL", "team-tracker.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         int(getEnvAsInt("REDIS_DB", 0)),
		RedisKeyPrefix:  getEnv("REDIS_KEY_PREFIX", "team-tracker:"),
		StatusPolicy:    strings.ToLower(getEnv("STATUS_POLICY", PolicyOverwrite)),
		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	switch cfg.StorageBackend {
	case BackendSQLite, BackendRedis:
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendRedis, cfg.StorageBackend)
	}

	switch cfg.StatusPolicy {
	case PolicyOverwrite, PolicyRederive:
	default:
		return nil, fmt.Errorf("STATUS_POLICY must be %q or %q, got %q", PolicyOverwrite, PolicyRederive, cfg.StatusPolicy)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) int64 {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseInt(valStr, 10, 64); err == nil {
		return val
	}

	return defaultVal
}
