package postgres

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/zone"
)

type ZoneRepository struct {
	db  DB
	log *slog.Logger
}

func NewZoneRepository(db DB, log *slog.Logger) *ZoneRepository {
	return &ZoneRepository{
		db:  db,
		log: log.With("component", "zone_repository"),
	}
}

func (r *ZoneRepository) Create(ctx context.Context, z zone.Zone) (zone.Zone, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO zones (name, sync, access, owner_id, created_at)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (name) DO NOTHING`,
		z.Name, string(z.Sync), string(z.Access), z.OwnerID, z.CreatedAt)
	if err != nil {
		r.log.Error("failed to create zone", "zone", z.Name, "error", err)
		return zone.Zone{}, fmt.Errorf("create zone: %w", err)
	}
	return r.Get(ctx, z.Name)
}

func (r *ZoneRepository) Get(ctx context.Context, name string) (zone.Zone, error) {
	var (
		z            zone.Zone
		sync, access string
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, sync, access, owner_id, created_at FROM zones WHERE name = $1`, name).
		Scan(&z.Name, &sync, &access, &z.OwnerID, &z.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return zone.Zone{}, zone.ErrNotFound
		}
		return zone.Zone{}, fmt.Errorf("get zone: %w", err)
	}
	z.Sync = zone.SyncProperty(sync)
	z.Access = zone.AccessProperty(access)
	return z, nil
}
