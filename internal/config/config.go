package config

import (
	"fmt"
	"os"
	"strconv"

	"statclinic/domain/stationarity"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Assess   AssessConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds database connection settings. An empty URL means
// runs are kept in memory only.
type DatabaseConfig struct {
	URL          string
	MaxOpenConns int
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AssessConfig holds the default assessment parameters and data source.
type AssessConfig struct {
	Alpha      float64
	Regression string
	Detailed   bool
	MaxLags    int
	Workers    int
	DataFile   string
}

// Params converts the configured defaults into assessment parameters.
func (c AssessConfig) Params() (stationarity.Params, error) {
	reg, err := stationarity.ParseRegression(c.Regression)
	if err != nil {
		return stationarity.Params{}, err
	}
	params := stationarity.Params{
		Alpha:      c.Alpha,
		Regression: reg,
		Detailed:   c.Detailed,
		MaxLags:    c.MaxLags,
	}
	if err := params.Validate(); err != nil {
		return stationarity.Params{}, err
	}
	return params, nil
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:          getEnvOrDefault("DATABASE_URL", ""),
			MaxOpenConns: getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Assess: AssessConfig{
			Alpha:      getEnvFloatOrDefault("ALPHA", stationarity.DefaultAlpha),
			Regression: getEnvOrDefault("REGRESSION", "c"),
			Detailed:   getEnvBoolOrDefault("DETAILED", false),
			MaxLags:    getEnvIntOrDefault("MAX_LAGS", stationarity.AutoLags),
			Workers:    getEnvIntOrDefault("WORKERS", 4),
			DataFile:   getEnvOrDefault("DATA_FILE", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Pretty: getEnvBoolOrDefault("LOG_PRETTY", false),
		},
	}

	if _, err := config.Assess.Params(); err != nil {
		return nil, fmt.Errorf("assessment configuration: %w", err)
	}

	return config, nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
