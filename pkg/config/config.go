package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// SSOT: every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Upstream macro service
	Macro MacroConfig

	// Optional history store
	Database DatabaseConfig

	// Redis (optional cache / rate limiting)
	Redis RedisConfig

	// Output
	OutputDir     string
	DefaultSymbol string

	// Staleness policy: data points older than this many days are demoted
	// to absence at the fetcher boundary. Zero disables the check.
	MaxIndicatorAgeDays int

	// Logging
	LogLevel  string
	LogFormat string
}

// MacroConfig holds the upstream macro-service configuration.
type MacroConfig struct {
	BaseURL string
	Timeout time.Duration

	// Forwarded credentials. These only widen upstream rate limits,
	// never affect the correctness of a run.
	FREDAPIKey    string
	BinanceAPIKey string
	BinanceSecret string
}

// DatabaseConfig holds PostgreSQL configuration for the history store.
type DatabaseConfig struct {
	URL string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// fredDefaultKey is the non-secret public default key shipped with the
// upstream macro service.
const fredDefaultKey = "bd89c0475f61d7555dee50daed12185f"

// Load reads configuration from environment variables.
// SSOT: this is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Macro: MacroConfig{
			BaseURL:       getEnv("MACRO_SERVICE_URL", "http://localhost:8001"),
			Timeout:       getEnvAsDuration("MACRO_SERVICE_TIMEOUT", "30s"),
			FREDAPIKey:    getEnv("FRED_API_KEY", fredDefaultKey),
			BinanceAPIKey: getEnv("BINANCE_API_KEY", ""),
			BinanceSecret: getEnv("BINANCE_SECRET", ""),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		OutputDir:           getEnv("OUTPUT_DIR", "output"),
		DefaultSymbol:       getEnv("DEFAULT_SYMBOL", "BTC/USDT"),
		MaxIndicatorAgeDays: getEnvAsInt("MAX_INDICATOR_AGE_DAYS", 0),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// HistoryEnabled reports whether the optional Postgres history store is
// configured.
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != ""
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Macro.BaseURL == "" {
		return fmt.Errorf("MACRO_SERVICE_URL must not be empty")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.MaxIndicatorAgeDays < 0 {
		return fmt.Errorf("MAX_INDICATOR_AGE_DAYS must not be negative")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	// Also try relative to the executable
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
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
