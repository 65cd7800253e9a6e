package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	Circulation CirculationConfig
	Job         JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// CirculationConfig holds lending policy knobs. The daily fine rate is
// deliberately configuration, not a code constant, so pricing can change
// without a deploy.
type CirculationConfig struct {
	LoanPeriodDays    int
	RenewalPeriodDays int
	BorrowLimit       int
	DailyFineRate     decimal.Decimal
}

// JobConfig holds background job scheduling knobs
type JobConfig struct {
	OverdueScanCron string
	Concurrency     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dailyFineRate, err := decimal.NewFromString(getEnv("CIRC_DAILY_FINE_RATE", "1.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid CIRC_DAILY_FINE_RATE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72),
		},
		Circulation: CirculationConfig{
			LoanPeriodDays:    getEnvInt("CIRC_LOAN_PERIOD_DAYS", 10),
			RenewalPeriodDays: getEnvInt("CIRC_RENEWAL_PERIOD_DAYS", 3),
			BorrowLimit:       getEnvInt("CIRC_BORROW_LIMIT", 5),
			DailyFineRate:     dailyFineRate,
		},
		Job: JobConfig{
			OverdueScanCron: getEnv("JOB_OVERDUE_SCAN_CRON", "0 6 * * *"),
			Concurrency:     getEnvInt("JOB_CONCURRENCY", 10),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the critical configuration values
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	if c.Circulation.LoanPeriodDays < 1 {
		return fmt.Errorf("CIRC_LOAN_PERIOD_DAYS must be at least 1")
	}
	if c.Circulation.BorrowLimit < 1 {
		return fmt.Errorf("CIRC_BORROW_LIMIT must be at least 1")
	}
	if c.Circulation.DailyFineRate.IsNegative() {
		return fmt.Errorf("CIRC_DAILY_FINE_RATE cannot be negative")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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
