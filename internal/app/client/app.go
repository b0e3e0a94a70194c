package client

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"bookshelf/internal/app/client/config"
	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/zone"
)

// App wires the transport, the session gate and the data-access facade.
type App struct {
	config    *config.Config
	log       *slog.Logger
	transport *Transport
	gate      *Gate
	db        *CloudDB
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	tr := NewTransport(cfg.BaseURL(), cfg.RequestTimeout, log)

	var cache Cache
	if cfg.PersistenceEnabled {
		c, err := NewSQLiteCache(cfg.CachePath)
		if err != nil {
			return nil, fmt.Errorf("open local cache: %w", err)
		}
		cache = c
	}

	return &App{
		config:    cfg,
		log:       log,
		transport: tr,
		gate:      NewGate(tr, cfg.SessionPath, log),
		db:        NewCloudDB(tr, cache, log),
	}, nil
}

func (a *App) Gate() *Gate {
	return a.gate
}

func (a *App) DB() *CloudDB {
	return a.db
}

func (a *App) Log() *slog.Logger {
	return a.log
}

func (a *App) Config() *config.Config {
	return a.config
}

// CheckConnection reports whether the store answers its health probe.
func (a *App) CheckConnection(ctx context.Context) error {
	return a.transport.Health(ctx)
}

// Start brings the data layer up for the configured zone and returns the
// initial book list. The caller closes the zone when done.
func (a *App) Start(ctx context.Context, policy Policy) ([]book.Book, error) {
	if !a.gate.SignedIn() {
		return nil, ErrNotSignedIn
	}

	if a.config.Zone.Sync != zone.SyncLocalOnly {
		// Logged by the facade; a missing type shows up on the first query.
		_ = a.db.RegisterSchema(ctx)
	}

	if err := a.db.OpenZone(ctx, a.config.Zone); err != nil {
		return nil, err
	}

	books, err := a.db.FetchAll(ctx, policy).Wait(ctx)
	if err != nil {
		return nil, err
	}

	a.log.Debug("client started", "zone", a.config.Zone.Name, "books", len(books), "policy", policy)
	return books, nil
}

// Close shuts the facade down and waits for pending writes.
func (a *App) Close() error {
	return a.db.Close()
}
