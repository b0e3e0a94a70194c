package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", DriverMemory)
	t.Setenv("DOCUMENT_STORE", DriverMemory)
	t.Setenv("SESSION_STORE", DriverMemory)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, "migrations", cfg.DB.Migrations)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.NotEmpty(t, cfg.Auth.Secret)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("RUN_ADDRESS", "127.0.0.1:9999")
	t.Setenv("DATABASE_URI", "postgres://localhost/bookshelf")
	t.Setenv("STORAGE_DRIVER", DriverPostgres)
	t.Setenv("DOCUMENT_STORE", DriverMongo)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SESSION_STORE", DriverRedis)
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.RunAddress)
	assert.Equal(t, DriverMongo, cfg.Storage.DocumentStore)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage: Storage{Driver: DriverMemory, DocumentStore: DriverMemory, SessionStore: DriverMemory},
			Auth:    Auth{AccessTokenTTL: time.Minute, SessionTTL: time.Hour},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "postgres without uri", mutate: func(c *Config) { c.Storage.Driver = DriverPostgres }, wantErr: "DATABASE_URI"},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "oracle" }, wantErr: "STORAGE_DRIVER"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Storage.DocumentStore = DriverMongo }, wantErr: "MONGO_URI"},
		{name: "redis without addr", mutate: func(c *Config) { c.Storage.SessionStore = DriverRedis }, wantErr: "REDIS_ADDR"},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.SessionTTL = 0 }, wantErr: "TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
