package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL string

	// Ledger source configuration
	YnabAuthToken  string
	YnabBudgetID   string
	BudgetFilePath string

	// Cache configuration
	RedisAddr       string
	CacheTTLSeconds int
	RefreshCache    bool // drop cached budget data before this run

	// Payoff configuration
	Strategy          string
	SnowballStart     float64
	SnowballIncrement float64
	LookbackMonths    int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		YnabAuthToken:  os.Getenv("YNAB_AUTH_TOKEN"),
		YnabBudgetID:   os.Getenv("YNAB_BUDGET_ID"),
		BudgetFilePath: os.Getenv("BUDGET_FILE"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),

		// Defaults
		CacheTTLSeconds:   3600,
		Strategy:          "smart",
		SnowballStart:     100,
		SnowballIncrement: 0,
		LookbackMonths:    12,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if strategy := os.Getenv("STRATEGY"); strategy != "" {
		config.Strategy = strategy
	}
	if start := os.Getenv("SNOWBALL_START"); start != "" {
		if parsed, err := strconv.ParseFloat(start, 64); err == nil {
			config.SnowballStart = parsed
		}
	}
	if increment := os.Getenv("SNOWBALL_INCREMENT"); increment != "" {
		if parsed, err := strconv.ParseFloat(increment, 64); err == nil {
			config.SnowballIncrement = parsed
		}
	}
	if lookback := os.Getenv("LOOKBACK_MONTHS"); lookback != "" {
		if parsed, err := strconv.Atoi(lookback); err == nil {
			config.LookbackMonths = parsed
		}
	}
	if ttl := os.Getenv("CACHE_TTL_SECONDS"); ttl != "" {
		if parsed, err := strconv.Atoi(ttl); err == nil {
			config.CacheTTLSeconds = parsed
		}
	}
	if refresh := os.Getenv("REFRESH_CACHE"); refresh != "" {
		if parsed, err := strconv.ParseBool(refresh); err == nil {
			config.RefreshCache = parsed
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
