package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medikart/PharmacyGo/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "pharmacy", cfg.PostgresDB)
	assert.Equal(t, domain.CommitModeSequential, cfg.SaleCommitMode)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 30, cfg.ExpiryHorizonDays)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL())
	assert.Equal(t, 30*24*time.Hour, cfg.ExpiryHorizon())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SALE_COMMIT_MODE", "atomic")
	t.Setenv("CART_TTL_HOURS", "48")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, domain.CommitModeAtomic, cfg.SaleCommitMode)
	assert.Equal(t, 48*time.Hour, cfg.CartTTL())
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidCommitMode(t *testing.T) {
	t.Setenv("SALE_COMMIT_MODE", "eventually")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit mode")
}

func TestConfig_PostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := Load()
	require.NoError(t, err)

	pg := cfg.Postgres()
	assert.Equal(t, "db.internal", pg.Host)
	assert.Contains(t, pg.DSN(), "db.internal:5432/pharmacy")
}
