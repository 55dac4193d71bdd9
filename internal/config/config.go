package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"ventas/internal/core"
	applog "ventas/internal/log"
)

type Config struct {
	// Generation
	SalesCount  int
	Seed        uint64
	MaxQuantity int
	MinPrice    string
	MaxPrice    string
	DaysBack    int
	BatchSize   int

	// Report
	ReportDays  int
	CatalogFile string

	// Backend selection
	DataBackend string
	SQLiteDSN   string
	CrossCheck  bool

	// Logging
	LogLevel string
}

const maxSalesCount = 100_000

var validBackends = []string{"memory", "sqlite"}

func Load() *Config {
	cfg := &Config{
		SalesCount:  getEnvInt("SALES_COUNT", 100),
		Seed:        getEnvUint64("SALES_SEED", 0),
		MaxQuantity: getEnvInt("SALES_MAX_QUANTITY", 10),
		MinPrice:    getEnv("SALES_MIN_PRICE", "10.00"),
		MaxPrice:    getEnv("SALES_MAX_PRICE", "500.00"),
		DaysBack:    getEnvInt("SALES_DAYS_BACK", 30),
		BatchSize:   getEnvInt("SEED_BATCH_SIZE", 50),

		ReportDays:  getEnvInt("REPORT_DAYS", 5),
		CatalogFile: getEnv("CATALOG_FILE", ""),

		DataBackend: getEnv("DATA_BACKEND", "memory"),
		SQLiteDSN:   getEnv("SQLITE_DSN", ":memory:"),
		CrossCheck:  getEnvBool("CROSS_CHECK", false),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.SalesCount < 0 || c.SalesCount > maxSalesCount {
		errors = append(errors, fmt.Sprintf("invalid sales count %d: must be between 0 and %d", c.SalesCount, maxSalesCount))
	}

	if c.BatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid seed batch size %d: must be at least 1", c.BatchSize))
	}

	if c.MaxQuantity < 1 {
		errors = append(errors, fmt.Sprintf("invalid max quantity %d: must be at least 1", c.MaxQuantity))
	}

	minPrice, minErr := core.ParseMoney(c.MinPrice)
	if minErr != nil {
		errors = append(errors, fmt.Sprintf("invalid min price '%s': must be a non-negative decimal", c.MinPrice))
	}
	maxPrice, maxErr := core.ParseMoney(c.MaxPrice)
	if maxErr != nil {
		errors = append(errors, fmt.Sprintf("invalid max price '%s': must be a non-negative decimal", c.MaxPrice))
	}
	if minErr == nil && maxErr == nil && maxPrice.Cents < minPrice.Cents {
		errors = append(errors, fmt.Sprintf("invalid price range: max %s is below min %s", c.MaxPrice, c.MinPrice))
	}

	if c.DaysBack < 0 || c.DaysBack > 3650 {
		errors = append(errors, fmt.Sprintf("invalid days back %d: must be between 0 and 3650", c.DaysBack))
	}

	if c.ReportDays < 1 {
		errors = append(errors, fmt.Sprintf("invalid report days %d: must be at least 1", c.ReportDays))
	}

	if c.CatalogFile != "" {
		if _, err := os.Stat(c.CatalogFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("catalog file does not exist: %s", c.CatalogFile))
		}
	}

	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" && c.SQLiteDSN == "" {
		errors = append(errors, "SQLite DSN cannot be empty when using sqlite backend")
	}

	if c.CrossCheck && c.DataBackend != "sqlite" {
		errors = append(errors, "cross check requires the sqlite backend")
	}

	if _, err := applog.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// PriceRange returns the configured price bounds. Call Validate first.
func (c *Config) PriceRange() (core.Money, core.Money, error) {
	lo, err := core.ParseMoney(c.MinPrice)
	if err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("min price: %w", err)
	}
	hi, err := core.ParseMoney(c.MaxPrice)
	if err != nil {
		return core.Money{}, core.Money{}, fmt.Errorf("max price: %w", err)
	}
	return lo, hi, nil
}

// Catalog returns the catalog from CatalogFile, or the built-in one.
func (c *Config) Catalog() (core.Catalog, error) {
	if c.CatalogFile == "" {
		return core.DefaultCatalog(), nil
	}
	return core.LoadCatalogFile(c.CatalogFile)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvUint64(key string, defaultValue uint64) uint64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseUint(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
