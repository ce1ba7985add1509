package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the engine configuration
type Config struct {
	Port           int
	APIKey         string   // API key the Mini-App front end authenticates with
	TrustedProxies []string // proxies whose X-Forwarded-For is honored

	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	// Remote authority
	AuthorityBaseURL string
	AuthorityAPIKey  string
	AuthorityTimeout time.Duration

	// Engine cadences
	TickInterval         time.Duration // accrual counter advancement
	RefreshInterval      time.Duration // authoritative snapshot refresh
	StakeRefreshInterval time.Duration // per-deposit recompute
	RatesRefreshInterval time.Duration // exchange rate table refresh

	// Stake rules
	StakePenaltyRate float64 // fraction withheld on early cancellation

	// Event log database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	EventLogRetention int // days
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		ServiceName: getEnv("SERVICE_NAME", "minecore"),
		Version:     getEnv("VERSION", "dev"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		AuthorityBaseURL: getEnv("AUTHORITY_BASE_URL", "http://localhost:9000"),
		AuthorityAPIKey:  getEnv("AUTHORITY_API_KEY", ""),

		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "minecore"),

		APIKey: getEnv("API_KEY", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	cfg.AuthorityTimeout, err = getEnvDuration("AUTHORITY_TIMEOUT", DefaultAuthorityTimeout)
	if err != nil {
		return nil, err
	}
	cfg.TickInterval, err = getEnvDuration("TICK_INTERVAL", DefaultTickInterval)
	if err != nil {
		return nil, err
	}
	cfg.RefreshInterval, err = getEnvDuration("REFRESH_INTERVAL", DefaultRefreshInterval)
	if err != nil {
		return nil, err
	}
	cfg.StakeRefreshInterval, err = getEnvDuration("STAKE_REFRESH_INTERVAL", DefaultStakeRefreshInterval)
	if err != nil {
		return nil, err
	}
	cfg.RatesRefreshInterval, err = getEnvDuration("RATES_REFRESH_INTERVAL", DefaultRatesRefreshInterval)
	if err != nil {
		return nil, err
	}

	cfg.StakePenaltyRate, err = getEnvFloat("STAKE_PENALTY_RATE", DefaultStakePenaltyRate)
	if err != nil {
		return nil, err
	}

	cfg.EventLogRetention, err = getEnvInt("EVENTLOG_RETENTION_DAYS", DefaultEventLogRetentionDays)
	if err != nil {
		return nil, err
	}

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return f, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
