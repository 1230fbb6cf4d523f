package config

import (
	"fmt"
	"time"

	"github.com/medikart/PharmacyGo/internal/domain"
	pkgconfig "github.com/medikart/PharmacyGo/pkg/config"
	"github.com/medikart/PharmacyGo/pkg/database"
)

// Config holds all configuration for the pharmacy server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Rate limiting; zero disables the limiter.
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"pharmacy"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"pharmacy_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"pharmacy"`
	PostgresSSL  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	// Redis
	RedisHost string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka; empty disables event publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Cart TTL in hours (default: 24 hours)
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"24"`

	// Inventory thresholds
	LowStockThreshold int `env:"LOW_STOCK_THRESHOLD" envDefault:"10"`
	ExpiryHorizonDays int `env:"EXPIRY_HORIZON_DAYS" envDefault:"30"`

	// Sale commit mode: sequential or atomic.
	SaleCommitMode string `env:"SALE_COMMIT_MODE" envDefault:"sequential"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load pharmacy config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SaleCommitMode != domain.CommitModeSequential && c.SaleCommitMode != domain.CommitModeAtomic {
		return fmt.Errorf("invalid sale commit mode: %q", c.SaleCommitMode)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("cart TTL must be at least 1 hour, got %d", c.CartTTLHours)
	}
	return nil
}

// Postgres builds the pool configuration for pkg/database.
func (c *Config) Postgres() database.PostgresConfig {
	pg := database.DefaultPostgresConfig()
	pg.Host = c.PostgresHost
	pg.Port = c.PostgresPort
	pg.User = c.PostgresUser
	pg.Password = c.PostgresPass
	pg.DBName = c.PostgresDB
	pg.SSLMode = c.PostgresSSL
	return pg
}

// Redis builds the client configuration for pkg/database.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{
		Host:     c.RedisHost,
		Port:     c.RedisPort,
		Password: c.RedisPass,
		DB:       c.RedisDB,
	}
}

// CartTTL returns the cart lifetime as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// ExpiryHorizon returns the expiring-soon window as a duration.
func (c *Config) ExpiryHorizon() time.Duration {
	return time.Duration(c.ExpiryHorizonDays) * 24 * time.Hour
}
