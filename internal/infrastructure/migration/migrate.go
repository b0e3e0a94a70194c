package migration

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// postgres database and file source drivers
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/config"
)

// Migrator is the part of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine builds a Migrator. Tests replace it to avoid touching disk and database.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    config.DB
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(cfg config.DB, engine MigrationEngine, log *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		cfg:    cfg,
		engine: engine,
		log:    log.With("component", "migration"),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up applies all pending migrations. ErrNoChange is not an error.
func (mg *Migration) Up() (err error) {
	m, err := mg.engine("file://"+mg.cfg.Migrations, mg.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		serr, dberr := m.Close()
		if cerr := errors.Join(serr, dberr); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close migrator: %w", cerr))
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			mg.log.Debug("schema is up to date")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	if version, dirty, verr := m.Version(); verr == nil {
		mg.log.Info("migrations applied", "version", version, "dirty", dirty)
	}
	return nil
}
