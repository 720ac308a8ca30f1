package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds the application configuration
type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// Currency is the single ISO 4217 currency the store trades in.
	Currency string

	// ShippingFlatRate is the flat shipping charge applied to an order.
	ShippingFlatRate decimal.Decimal
	// FreeShippingThreshold waives the flat rate once the cart total
	// reaches it.
	FreeShippingThreshold decimal.Decimal

	// PriceCacheSize and PriceCacheTTLSeconds bound the price oracle cache.
	PriceCacheSize       int
	PriceCacheTTLSeconds int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:   getEnv("LOG_LEVEL", "INFO"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "storefront"),
		Currency:   getEnv("STORE_CURRENCY", "EUR"),
	}

	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	cfg.ShippingFlatRate, err = getEnvDecimal("SHIPPING_FLAT_RATE", "4.90")
	if err != nil {
		return nil, err
	}

	cfg.FreeShippingThreshold, err = getEnvDecimal("FREE_SHIPPING_THRESHOLD", "50.00")
	if err != nil {
		return nil, err
	}

	cfg.PriceCacheSize, err = getEnvInt("PRICE_CACHE_SIZE", 1024)
	if err != nil {
		return nil, err
	}

	cfg.PriceCacheTTLSeconds, err = getEnvInt("PRICE_CACHE_TTL_SECONDS", 30)
	if err != nil {
		return nil, err
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

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

func getEnvDecimal(key, defaultValue string) (decimal.Decimal, error) {
	value := getEnv(key, defaultValue)

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
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
