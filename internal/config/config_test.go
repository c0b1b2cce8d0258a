package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.ContactWindow)
	assert.Equal(t, 3, cfg.RateLimit.ContactLimit)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenLifespan)
	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
}

func TestLoadConfigFromYAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("app:\n  port: \"9000\"\nstore:\n  driver: memory\nrate_limit:\n  contact_limit: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev,https://b.dev")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.RateLimit.ContactLimit)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORS.AllowedOrigins)
}

func validConfig() Config {
	var c Config
	c.App.Env = "production"
	c.Store.Driver = StoreDriverPostgres
	c.Store.DSN = "postgres://u:p@db/portfolio"
	c.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	c.Auth.TokenLifespan = time.Hour
	c.RateLimit.ContactLimit = 3
	c.RateLimit.ContactWindow = 10 * time.Minute
	c.CORS.AllowedOrigins = []string{"https://portfolio.dev"}
	return c
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	short := validConfig()
	short.Auth.JWTSecret = "short"
	assert.ErrorContains(t, short.Validate(), "at least 32")

	wildcard := validConfig()
	wildcard.CORS.AllowedOrigins = []string{"*"}
	assert.ErrorContains(t, wildcard.Validate(), "wildcard")

	memory := validConfig()
	memory.Store.Driver = StoreDriverMemory
	assert.ErrorContains(t, memory.Validate(), "memory store")

	noDSN := validConfig()
	noDSN.Store.DSN = ""
	assert.ErrorContains(t, noDSN.Validate(), "store.dsn")
}
