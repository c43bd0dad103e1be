package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	ServiceName string
	Server      ServerConfig
	Database    DatabaseConfig
	Source      SourceConfig
	Import      ImportConfig
	RabbitMQ    RabbitMQConfig
}

// ServerConfig holds HTTP listener settings
type ServerConfig struct {
	Addr string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL string
}

// SourceConfig holds external feed settings
type SourceConfig struct {
	URL         string
	TimeoutSecs int
}

// ImportConfig holds periodic import settings
type ImportConfig struct {
	IntervalSecs int
}

// RabbitMQConfig holds optional event publishing settings.
// An empty URL disables publishing entirely.
type RabbitMQConfig struct {
	URL              string
	EventsExchange   string
	ImportRoutingKey string
}

const defaultSourceURL = "https://mempool.space/api/v1/lightning/nodes/rankings/connectivity"

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName: getEnv("SERVICE_NAME", "lightning-node-registry"),
		Server: ServerConfig{
			Addr: getEnv("SERVER_ADDR", "0.0.0.0:8080"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", "postgres://localhost:5432/lightning_nodes?sslmode=disable"),
		},
		Source: SourceConfig{
			URL:         getEnv("SOURCE_URL", defaultSourceURL),
			TimeoutSecs: getEnvAsInt("SOURCE_TIMEOUT_SECS", 15),
		},
		Import: ImportConfig{
			IntervalSecs: getEnvAsInt("IMPORT_INTERVAL_SECS", 600),
		},
		RabbitMQ: RabbitMQConfig{
			URL:              getEnv("RABBITMQ_URL", ""),
			EventsExchange:   getEnv("RABBITMQ_EVENTS_EXCHANGE", "lightning-registry.events.exchange"),
			ImportRoutingKey: getEnv("RABBITMQ_IMPORT_ROUTING_KEY", "node.import.completed"),
		},
	}

	if cfg.Import.IntervalSecs <= 0 {
		return nil, fmt.Errorf("IMPORT_INTERVAL_SECS must be positive, got %d", cfg.Import.IntervalSecs)
	}
	if cfg.Source.TimeoutSecs <= 0 {
		return nil, fmt.Errorf("SOURCE_TIMEOUT_SECS must be positive, got %d", cfg.Source.TimeoutSecs)
	}

	return cfg, nil
}

// ImportInterval returns the periodic import interval as a duration
func (c *Config) ImportInterval() time.Duration {
	return time.Duration(c.Import.IntervalSecs) * time.Second
}

// SourceTimeout returns the feed request timeout as a duration
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSecs) * time.Second
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
