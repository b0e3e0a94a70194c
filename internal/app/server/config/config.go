package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"

	defaultSecret = "SecRetKey"
)

type Config struct {
	Env     string
	DB      DB
	Server  Server
	Storage Storage
	Mongo   Mongo
	Redis   Redis
	Auth    Auth
}

type DB struct {
	DatabaseURI string
	Migrations  string
}

type Server struct {
	RunAddress string
}

// Storage selects the repository implementations.
type Storage struct {
	Driver        string
	DocumentStore string
	SessionStore  string
}

type Mongo struct {
	URI      string
	Database string
}

type Redis struct {
	Addr     string
	Password string
}

type Auth struct {
	Secret         string
	AccessTokenTTL time.Duration
	SessionTTL     time.Duration
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load(envPath)

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("run_address", ":8080")
	v.SetDefault("migrations_path", "migrations")
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("secret", defaultSecret)
	v.SetDefault("storage_driver", DriverPostgres)
	v.SetDefault("document_store", DriverPostgres)
	v.SetDefault("session_store", DriverPostgres)
	v.SetDefault("mongo_database", "bookshelf")
	v.SetDefault("access_token_ttl", "15m")
	v.SetDefault("session_ttl", "24h")

	cfg := &Config{
		Env: v.GetString("app_env"),
		DB: DB{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
		},
		Server: Server{RunAddress: v.GetString("run_address")},
		Storage: Storage{
			Driver:        v.GetString("storage_driver"),
			DocumentStore: v.GetString("document_store"),
			SessionStore:  v.GetString("session_store"),
		},
		Mongo: Mongo{
			URI:      v.GetString("mongo_uri"),
			Database: v.GetString("mongo_database"),
		},
		Redis: Redis{
			Addr:     v.GetString("redis_addr"),
			Password: v.GetString("redis_password"),
		},
		Auth: Auth{
			Secret:         v.GetString("secret"),
			AccessTokenTTL: v.GetDuration("access_token_ttl"),
			SessionTTL:     v.GetDuration("session_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.DatabaseURI == "" {
			errs = append(errs, errors.New("DATABASE_URI is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.Storage.DocumentStore {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo document store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DOCUMENT_STORE %q", c.Storage.DocumentStore))
	}

	switch c.Storage.SessionStore {
	case DriverPostgres, DriverMemory:
	case DriverRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis session store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_STORE %q", c.Storage.SessionStore))
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("token TTLs must be positive"))
	}

	return errors.Join(errs...)
}
