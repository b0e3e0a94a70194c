package zone

import "context"

type Repository interface {
	// Create stores z unless a zone with the same name exists and returns
	// the stored zone either way.
	Create(ctx context.Context, z Zone) (Zone, error)
	Get(ctx context.Context, name string) (Zone, error)
}
