package zone

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Open(ctx context.Context, userID int, cfg Config) (Zone, error)
	Authorize(ctx context.Context, name string, userID int) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "zone_service"),
		now:  time.Now,
	}
}

// Open creates the zone on first use. Reopening is allowed as long as the
// access property matches; the first opener owns the zone.
func (s *Service) Open(ctx context.Context, userID int, cfg Config) (Zone, error) {
	if err := cfg.Validate(); err != nil {
		return Zone{}, err
	}
	if cfg.Sync == SyncLocalOnly {
		return Zone{}, ErrLocalOnly
	}

	z, err := s.repo.Create(ctx, Zone{
		Name:      cfg.Name,
		Sync:      cfg.Sync,
		Access:    cfg.Access,
		OwnerID:   userID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Error("failed to open zone", "zone", cfg.Name, "user_id", userID, "error", err)
		return Zone{}, fmt.Errorf("open zone: %w", err)
	}

	if z.Access != cfg.Access {
		return Zone{}, ErrConflict
	}
	if err := allowed(z, userID); err != nil {
		return Zone{}, err
	}

	s.log.Debug("zone opened", "zone", z.Name, "user_id", userID, "owner_id", z.OwnerID)

	return z, nil
}

// Authorize returns nil when userID may read and write the zone.
func (s *Service) Authorize(ctx context.Context, name string, userID int) error {
	z, err := s.repo.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get zone: %w", err)
	}
	return allowed(z, userID)
}

func allowed(z Zone, userID int) error {
	if z.Access == AccessPrivate && z.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}
