package schema

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Register(ctx context.Context, info ObjectTypeInfo) (RegisterResult, error)
	Require(ctx context.Context, typeName string) error
}

// RegisterResult reports what happened to every type of a descriptor.
type RegisterResult struct {
	Created   []string `json:"created"`
	Upgraded  []string `json:"upgraded"`
	Unchanged []string `json:"unchanged"`
}

type Service struct {
	repo Repository
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "schema_service"),
	}
}

// Register is idempotent: a type stored with the same or a newer object type
// version is left as is.
func (s *Service) Register(ctx context.Context, info ObjectTypeInfo) (RegisterResult, error) {
	var res RegisterResult

	if err := info.Validate(); err != nil {
		return res, err
	}

	for _, t := range info.ObjectTypes {
		stored, err := s.repo.Get(ctx, t.Name)
		exists := err == nil
		if err != nil && !errors.Is(err, ErrTypeNotRegistered) {
			return res, fmt.Errorf("get object type %s: %w", t.Name, err)
		}

		if exists && stored.ObjectTypeVersion >= info.ObjectTypeVersion {
			res.Unchanged = append(res.Unchanged, t.Name)
			continue
		}

		if err := s.repo.Save(ctx, StoredType{
			ObjectType:        t,
			FormatVersion:     info.FormatVersion,
			ObjectTypeVersion: info.ObjectTypeVersion,
		}); err != nil {
			s.log.Error("failed to save object type", "type", t.Name, "error", err)
			return res, fmt.Errorf("save object type %s: %w", t.Name, err)
		}

		if exists {
			s.log.Info("object type upgraded", "type", t.Name,
				"from", stored.ObjectTypeVersion, "to", info.ObjectTypeVersion)
			res.Upgraded = append(res.Upgraded, t.Name)
		} else {
			s.log.Info("object type created", "type", t.Name, "version", info.ObjectTypeVersion)
			res.Created = append(res.Created, t.Name)
		}
	}

	return res, nil
}

func (s *Service) Require(ctx context.Context, typeName string) error {
	if _, err := s.repo.Get(ctx, typeName); err != nil {
		if errors.Is(err, ErrTypeNotRegistered) {
			return fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeName)
		}
		return fmt.Errorf("get object type %s: %w", typeName, err)
	}
	return nil
}
