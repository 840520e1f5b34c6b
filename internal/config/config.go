package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration, read from the environment.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"development"`
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" env-default:"8080"`
}

// StorageConfig selects the storage backend at startup.
type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" env-default:"postgres"`
}

// DatabaseConfig holds Postgres connection settings. Ignored when the memory
// backend is selected.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" env-default:"localhost"`
	Port            int    `env:"DB_PORT" env-default:"5432"`
	User            string `env:"DB_USER" env-default:"postgres"`
	Password        string `env:"DB_PASSWORD" env-default:""`
	Database        string `env:"DB_NAME" env-default:"storefront"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" env-default:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" env-default:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" env-default:"300"` // seconds
}

// AuthConfig holds caller-identity settings. DemoUserID, when non-zero, is
// the identity assumed for requests that carry no bearer token. It exists for
// demo and test setups only and is disabled by default, so a production
// deployment never grants a default identity.
type AuthConfig struct {
	DemoUserID int64 `env:"AUTH_DEMO_USER_ID" env-default:"0"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"json"` // "json" or "console"
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Backend != BackendMemory && c.Storage.Backend != BackendPostgres {
		return fmt.Errorf("invalid storage backend: %s (must be memory or postgres)", c.Storage.Backend)
	}

	if c.Storage.Backend == BackendPostgres {
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.Database.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}
		if c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
