// Package config defines the configuration structures for the laudo backend.
// No I/O or parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/postgres"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/database/redis"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/messaging/kafka"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/storage/minio"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AuthConfig holds the API key accepted on mutating endpoints.  Empty
// disables authentication (development only).
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// MigrationConfig holds schema migration settings.
type MigrationConfig struct {
	Path        string `mapstructure:"path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// Config is the root configuration for the apiserver and CLI.
type Config struct {
	Server     ServerConfig         `mapstructure:"server"`
	Auth       AuthConfig           `mapstructure:"auth"`
	Logging    logging.Config       `mapstructure:"logging"`
	Database   postgres.Config      `mapstructure:"database"`
	Migrations MigrationConfig      `mapstructure:"migrations"`
	Redis      redis.Config         `mapstructure:"redis"`
	Kafka      kafka.ProducerConfig `mapstructure:"kafka"`
	Storage    minio.Config         `mapstructure:"storage"`

	// CacheEnabled toggles the Redis rule cache; the resolver reads straight
	// from PostgreSQL when false.
	CacheEnabled bool `mapstructure:"cache_enabled"`
	// EventsEnabled toggles Kafka event publication.
	EventsEnabled bool `mapstructure:"events_enabled"`
	// StorageEnabled toggles the document attachment endpoints.
	StorageEnabled bool `mapstructure:"storage_enabled"`
}

// Validate checks the invariants a running server depends on.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release, or test, got %q", c.Server.Mode)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if c.CacheEnabled && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when cache_enabled")
	}
	if c.EventsEnabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when events_enabled")
	}
	if c.StorageEnabled && c.Storage.Endpoint == "" {
		return fmt.Errorf("storage.endpoint is required when storage_enabled")
	}
	return nil
}
