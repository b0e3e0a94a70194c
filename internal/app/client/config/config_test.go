package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/domain/zone"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
	assert.Equal(t, filepath.Join(dir, "session"), cfg.SessionPath)
	assert.Equal(t, filepath.Join(dir, "cache.db"), cfg.CachePath)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.PersistenceEnabled)
	assert.Equal(t, zone.Config{Name: "QuickStartDemo", Sync: zone.SyncCloudCache, Access: zone.AccessPublic}, cfg.Zone)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(
		"server_address: books.example.com\nenable_tls: true\nzone_name: Library\naccess_property: private\n"), 0o600))

	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("ZONE_NAME", "FromEnv")

	cfg, err := Load(file)
	require.NoError(t, err)

	assert.Equal(t, "https://books.example.com", cfg.BaseURL())
	assert.Equal(t, "FromEnv", cfg.Zone.Name)
	assert.Equal(t, zone.AccessPrivate, cfg.Zone.Access)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "bad zone name", env: map[string]string{"ZONE_NAME": "no spaces allowed"}},
		{name: "bad sync property", env: map[string]string{"SYNC_PROPERTY": "eventual"}},
		{name: "local only without cache", env: map[string]string{"SYNC_PROPERTY": "local_only", "PERSISTENCE_ENABLED": "false"}},
		{name: "zero timeout", env: map[string]string{"REQUEST_TIMEOUT_SECONDS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_DIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.ServerAddress = "books.example.com:443"
	cfg.EnableTLS = true
	cfg.Zone = zone.Config{Name: "Device", Sync: zone.SyncLocalOnly, Access: zone.AccessPrivate}

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, cfg.WriteFile(file))

	loaded, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, cfg.BaseURL(), loaded.BaseURL())
	assert.Equal(t, cfg.Zone, loaded.Zone)
	assert.Equal(t, cfg.RequestTimeout, loaded.RequestTimeout)
}
