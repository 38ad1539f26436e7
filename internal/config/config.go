package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port              int
	SnapshotPath      string
	LogLevel          string
	LogFormat         string
	ShopName          string
	Currency          string
	TaxRate           float64
	LowStockThreshold int
	SeedDemoData      bool // generate demo transactions on first run
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		SnapshotPath: getEnv("SNAPSHOT_PATH", "data/snapshot.json"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		ShopName:     getEnv("SHOP_NAME", "My Blacksmith Shop"),
		Currency:     getEnv("CURRENCY", "$"),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	taxStr := getEnv("TAX_RATE", "8")
	tax, err := strconv.ParseFloat(taxStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE value: %w", err)
	}
	cfg.TaxRate = tax

	thresholdStr := getEnv("LOW_STOCK_THRESHOLD", "10")
	threshold, err := strconv.Atoi(thresholdStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_THRESHOLD value: %w", err)
	}
	cfg.LowStockThreshold = threshold

	seedStr := getEnv("SEED_DEMO_DATA", "false")
	seed, err := strconv.ParseBool(seedStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DEMO_DATA value: %w", err)
	}
	cfg.SeedDemoData = seed

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
