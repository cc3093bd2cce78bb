package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion        string
	DynamoDBTable    string
	SessionIndexName string // GSI1 - session-level commitment listings

	// Evidence batching
	EvidenceBatchSize int // store cap on fetch-by-identifier-set cardinality
	FetchConcurrency  int

	// Caching (seconds)
	RoleCacheTTL  int
	QueryCacheTTL int

	// Logging
	LogLevel string

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "ca-central-1"),
		DynamoDBTable: getEnv("TABLE_NAME", "pledgeboard"),

		SessionIndexName: getEnv("SESSION_INDEX_NAME", "SessionIndex"),

		EvidenceBatchSize: getEnvInt("EVIDENCE_BATCH_SIZE", 30),
		FetchConcurrency:  getEnvInt("FETCH_CONCURRENCY", 4),

		RoleCacheTTL:  getEnvInt("ROLE_CACHE_TTL", 300),
		QueryCacheTTL: getEnvInt("QUERY_CACHE_TTL", 60),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present and sane
func (c *Config) Validate() error {
	if c.EvidenceBatchSize < 1 || c.EvidenceBatchSize > 100 {
		return fmt.Errorf("EVIDENCE_BATCH_SIZE must be between 1 and 100, got %d", c.EvidenceBatchSize)
	}
	if c.FetchConcurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1, got %d", c.FetchConcurrency)
	}

	if c.Environment == "production" {
		if c.DynamoDBTable == "" {
			return fmt.Errorf("TABLE_NAME is required")
		}
		if c.SessionIndexName == "" {
			return fmt.Errorf("SESSION_INDEX_NAME is required")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
