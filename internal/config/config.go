package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the DevOps API service
type Config struct {
	// Server configuration
	Env      string `env:"ENV" envDefault:"development"`
	APIHost  string `env:"API_HOST" envDefault:"0.0.0.0"`
	APIPort  int    `env:"API_PORT" envDefault:"8000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Observability endpoints (informational, logged at startup)
	Observability ObservabilityConfig

	// Timeouts
	Timeouts TimeoutConfig
}

// DatabaseConfig holds PostgreSQL connection configuration.
// URL takes precedence over the discrete POSTGRES_* parts.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Name     string `env:"POSTGRES_DB" envDefault:"devops_db"`
	User     string `env:"POSTGRES_USER" envDefault:"postgres"`
	Password string `env:"POSTGRES_PASSWORD"`
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	PingTimeout time.Duration `env:"POSTGRES_PING_TIMEOUT" envDefault:"5s"`
}

// RedisConfig holds Redis connection configuration.
// URL takes precedence over Host/Port.
type RedisConfig struct {
	URL      string `env:"REDIS_URL"`
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASS"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`

	// Connection pool settings
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// ObservabilityConfig holds the locations of the external scrape and
// dashboard collaborators. The service never calls them; they are kept
// for startup logging and operator reference.
type ObservabilityConfig struct {
	PrometheusEndpoint string `env:"PROMETHEUS_ENDPOINT" envDefault:"http://localhost:9090"`
	GrafanaEndpoint    string `env:"GRAFANA_ENDPOINT" envDefault:"http://localhost:3000"`
}

// TimeoutConfig holds various timeout configurations
type TimeoutConfig struct {
	ShutdownTimeout time.Duration `env:"TIMEOUT_SHUTDOWN" envDefault:"30s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("invalid API port: %d", c.APIPort)
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid PostgreSQL port: %d", c.Database.Port)
	}

	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid Redis port: %d", c.Redis.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// GetHTTPAddr returns the HTTP server listen address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}

// GetDSN returns the PostgreSQL connection string. DATABASE_URL wins
// when set; otherwise the DSN is assembled from the POSTGRES_* parts.
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GetOptions returns the Redis client options. REDIS_URL wins when set
// and is parsed as a redis:// URL; otherwise the address is assembled
// from REDIS_HOST and REDIS_PORT. Pool settings apply either way.
func (c *RedisConfig) GetOptions() (*redis.Options, error) {
	var opts *redis.Options

	if c.URL != "" {
		parsed, err := redis.ParseURL(c.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Password: c.Password,
			DB:       c.DB,
		}
	}

	opts.PoolSize = c.PoolSize
	opts.MinIdleConns = c.MinIdleConns
	opts.MaxRetries = c.MaxRetries
	opts.DialTimeout = c.DialTimeout
	opts.ReadTimeout = c.ReadTimeout
	opts.WriteTimeout = c.WriteTimeout

	return opts, nil
}
