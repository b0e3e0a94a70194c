package book

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

// ZoneAuthorizer checks that a user may work with a zone.
type ZoneAuthorizer interface {
	Authorize(ctx context.Context, zone string, userID int) error
}

// TypeChecker checks that an object type is known to the store.
type TypeChecker interface {
	Require(ctx context.Context, typeName string) error
}

type Servicer interface {
	List(ctx context.Context, userID int, zone string) ([]Book, error)
	Upsert(ctx context.Context, userID int, zone string, books []Book) (int, error)
	Delete(ctx context.Context, userID int, zone string, ids []int) (int, error)
}

// Service implements book operations on top of a Repository.
type Service struct {
	repo    Repository
	zones   ZoneAuthorizer
	schemas TypeChecker
	log     *slog.Logger
}

func NewService(repo Repository, zones ZoneAuthorizer, schemas TypeChecker, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		zones:   zones,
		schemas: schemas,
		log:     log.With("component", "book_service"),
	}
}

// List returns every book of the zone.
func (s *Service) List(ctx context.Context, userID int, zone string) ([]Book, error) {
	if err := s.check(ctx, userID, zone); err != nil {
		return nil, err
	}

	stored, err := s.repo.List(ctx, zone)
	if err != nil {
		s.log.Error("failed to list books", "zone", zone, "user_id", userID, "error", err)
		return nil, fmt.Errorf("list books: %w", err)
	}

	books := make([]Book, len(stored))
	for i, b := range stored {
		books[i] = b.Book
	}

	return books, nil
}

// Upsert inserts new books and overwrites existing ones with the same id.
func (s *Service) Upsert(ctx context.Context, userID int, zone string, books []Book) (int, error) {
	if len(books) == 0 {
		return 0, fmt.Errorf("%w: empty batch", ErrInvalidData)
	}
	batch := make([]Book, len(books))
	for i, b := range books {
		b.Title = strings.TrimSpace(b.Title)
		b.Description = strings.TrimSpace(b.Description)
		if err := validate(b); err != nil {
			return 0, err
		}
		batch[i] = b
	}

	if err := s.check(ctx, userID, zone); err != nil {
		return 0, err
	}

	n, err := s.repo.Upsert(ctx, zone, userID, batch)
	if err != nil {
		s.log.Error("failed to upsert books", "zone", zone, "user_id", userID, "count", len(books), "error", err)
		return 0, fmt.Errorf("upsert books: %w", err)
	}

	s.log.Info("books upserted", "zone", zone, "user_id", userID, "count", n)

	return n, nil
}

// Delete removes books by id. Unknown ids are skipped.
func (s *Service) Delete(ctx context.Context, userID int, zone string, ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no ids", ErrInvalidData)
	}

	if err := s.check(ctx, userID, zone); err != nil {
		return 0, err
	}

	n, err := s.repo.Delete(ctx, zone, ids)
	if err != nil {
		s.log.Error("failed to delete books", "zone", zone, "user_id", userID, "error", err)
		return 0, fmt.Errorf("delete books: %w", err)
	}

	s.log.Info("books deleted", "zone", zone, "user_id", userID, "count", n)

	return n, nil
}

func (s *Service) check(ctx context.Context, userID int, zone string) error {
	if err := s.schemas.Require(ctx, TypeName); err != nil {
		return err
	}
	return s.zones.Authorize(ctx, zone, userID)
}

func validate(b Book) error {
	if b.ID <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidData, b.ID)
	}
	if b.Title == "" {
		return fmt.Errorf("%w: title is required (id %d)", ErrInvalidData, b.ID)
	}
	return nil
}
