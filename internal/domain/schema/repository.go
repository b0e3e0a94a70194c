package schema

import "context"

type Repository interface {
	// Get returns ErrTypeNotRegistered when the type is unknown.
	Get(ctx context.Context, name string) (StoredType, error)
	Save(ctx context.Context, t StoredType) error
}
