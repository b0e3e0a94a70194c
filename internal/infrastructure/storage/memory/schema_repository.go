package memory

import (
	"context"
	"slices"
	"sync"

	"bookshelf/internal/domain/schema"
)

type SchemaRepository struct {
	mu    sync.RWMutex
	types map[string]schema.StoredType
}

func NewSchemaRepository() *SchemaRepository {
	return &SchemaRepository{types: make(map[string]schema.StoredType)}
}

func (r *SchemaRepository) Get(_ context.Context, name string) (schema.StoredType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[name]
	if !ok {
		return schema.StoredType{}, schema.ErrTypeNotRegistered
	}
	t.Fields = slices.Clone(t.Fields)
	return t, nil
}

func (r *SchemaRepository) Save(_ context.Context, t schema.StoredType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.Fields = slices.Clone(t.Fields)
	r.types[t.Name] = t
	return nil
}
