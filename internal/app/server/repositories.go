package server

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/health"
	"bookshelf/internal/app/server/config"
	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/domain/user"
	"bookshelf/internal/domain/zone"
	"bookshelf/internal/infrastructure/storage/memory"
	"bookshelf/internal/infrastructure/storage/mongo"
	"bookshelf/internal/infrastructure/storage/postgres"
	"bookshelf/internal/infrastructure/storage/redis"
)

// Repositories is the storage selected by configuration.
type Repositories struct {
	Users    user.Repository
	Sessions session.Repository
	Schemas  schema.Repository
	Zones    zone.Repository
	Books    book.Repository
	Pingers  []health.Pinger

	closers []func()
}

func (r *Repositories) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// OpenRepositories connects to the configured stores. On error everything
// opened so far is closed.
func OpenRepositories(ctx context.Context, cfg *config.Config, log *slog.Logger) (_ *Repositories, err error) {
	repos := &Repositories{}
	defer func() {
		if err != nil {
			repos.Close()
		}
	}()

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		repos.Users = memory.NewUserRepository()
		repos.Sessions = memory.NewSessionRepository()
		repos.Schemas = memory.NewSchemaRepository()
		repos.Zones = memory.NewZoneRepository()
		repos.Books = memory.NewBookRepository()
		log.Warn("using in-memory storage, data is lost on restart")
	case config.DriverPostgres:
		storage, err := postgres.New(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		repos.closers = append(repos.closers, func() { _ = storage.Close() })
		repos.Pingers = append(repos.Pingers, storage)

		pool := storage.Pool()
		repos.Users = postgres.NewUserRepository(pool, log)
		repos.Sessions = postgres.NewSessionRepository(pool, log)
		repos.Schemas = postgres.NewSchemaRepository(pool, log)
		repos.Zones = postgres.NewZoneRepository(pool, log)
		repos.Books = postgres.NewBookRepository(pool, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	switch cfg.Storage.DocumentStore {
	case config.DriverMongo:
		books, err := mongo.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database, log)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		repos.closers = append(repos.closers, func() { _ = books.Close(context.Background()) })
		repos.Pingers = append(repos.Pingers, books)
		repos.Books = books
	case config.DriverMemory:
		if cfg.Storage.Driver != config.DriverMemory {
			repos.Books = memory.NewBookRepository()
		}
	}

	switch cfg.Storage.SessionStore {
	case config.DriverRedis:
		sessions, err := redis.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, log)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		repos.closers = append(repos.closers, func() { _ = sessions.Close() })
		repos.Pingers = append(repos.Pingers, sessions)
		repos.Sessions = sessions
	case config.DriverMemory:
		if cfg.Storage.Driver != config.DriverMemory {
			repos.Sessions = memory.NewSessionRepository()
		}
	}

	return repos, nil
}
