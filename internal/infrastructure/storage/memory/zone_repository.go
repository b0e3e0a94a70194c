package memory

import (
	"context"
	"sync"

	"bookshelf/internal/domain/zone"
)

type ZoneRepository struct {
	mu    sync.RWMutex
	zones map[string]zone.Zone
}

func NewZoneRepository() *ZoneRepository {
	return &ZoneRepository{zones: make(map[string]zone.Zone)}
}

func (r *ZoneRepository) Create(_ context.Context, z zone.Zone) (zone.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.zones[z.Name]; ok {
		return existing, nil
	}
	r.zones[z.Name] = z
	return z, nil
}

func (r *ZoneRepository) Get(_ context.Context, name string) (zone.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	z, ok := r.zones[name]
	if !ok {
		return zone.Zone{}, zone.ErrNotFound
	}
	return z, nil
}
