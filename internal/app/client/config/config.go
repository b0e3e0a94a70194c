package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"bookshelf/internal/domain/zone"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".bookshelf"
	defaultZoneName      = "QuickStartDemo"
	defaultTimeout       = 30

	sessionFile = "session"
	cacheFile   = "cache.db"
)

type Config struct {
	Env                string
	ServerAddress      string
	EnableTLS          bool
	ConfigDir          string
	SessionPath        string
	CachePath          string
	PersistenceEnabled bool
	RequestTimeout     time.Duration
	Zone               zone.Config
}

// Load reads .env, an optional YAML config file and the environment, in
// increasing order of precedence. An empty file means the default locations.
func Load(file string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("config_dir", "")
	v.SetDefault("zone_name", defaultZoneName)
	v.SetDefault("sync_property", string(zone.SyncCloudCache))
	v.SetDefault("access_property", string(zone.AccessPublic))
	v.SetDefault("persistence_enabled", true)
	v.SetDefault("request_timeout_seconds", defaultTimeout)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, defaultConfigDir))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	configDir := v.GetString("config_dir")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		configDir = filepath.Join(home, defaultConfigDir)
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	cfg := &Config{
		Env:                v.GetString("app_env"),
		ServerAddress:      v.GetString("server_address"),
		EnableTLS:          v.GetBool("enable_tls"),
		ConfigDir:          configDir,
		SessionPath:        filepath.Join(configDir, sessionFile),
		CachePath:          filepath.Join(configDir, cacheFile),
		PersistenceEnabled: v.GetBool("persistence_enabled"),
		RequestTimeout:     time.Duration(v.GetInt("request_timeout_seconds")) * time.Second,
		Zone: zone.Config{
			Name:   v.GetString("zone_name"),
			Sync:   zone.SyncProperty(v.GetString("sync_property")),
			Access: zone.AccessProperty(v.GetString("access_property")),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.ServerAddress == "" {
		errs = append(errs, errors.New("server address must not be empty"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}
	if err := c.Zone.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Zone.Sync == zone.SyncLocalOnly && !c.PersistenceEnabled {
		errs = append(errs, errors.New("local_only zones need persistence enabled"))
	}
	return errors.Join(errs...)
}

// WriteFile saves the settings a user normally edits as a YAML config file.
func (c *Config) WriteFile(path string) error {
	v := viper.New()
	v.Set("app_env", c.Env)
	v.Set("server_address", c.ServerAddress)
	v.Set("enable_tls", c.EnableTLS)
	v.Set("zone_name", c.Zone.Name)
	v.Set("sync_property", string(c.Zone.Sync))
	v.Set("access_property", string(c.Zone.Access))
	v.Set("persistence_enabled", c.PersistenceEnabled)
	v.Set("request_timeout_seconds", int(c.RequestTimeout/time.Second))

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// BaseURL is the store address with scheme.
func (c *Config) BaseURL() string {
	if c.EnableTLS {
		return "https://" + c.ServerAddress
	}
	return "http://" + c.ServerAddress
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}
