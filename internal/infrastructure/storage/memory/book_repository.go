package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"bookshelf/internal/domain/book"
)

type BookRepository struct {
	mu    sync.RWMutex
	zones map[string]map[int]book.StoredBook
	now   func() time.Time
}

func NewBookRepository() *BookRepository {
	return &BookRepository{
		zones: make(map[string]map[int]book.StoredBook),
		now:   time.Now,
	}
}

// List returns the books of a zone ordered by id.
func (r *BookRepository) List(_ context.Context, zone string) ([]book.StoredBook, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]book.StoredBook, 0, len(r.zones[zone]))
	for _, b := range r.zones[zone] {
		books = append(books, b)
	}
	slices.SortFunc(books, func(a, b book.StoredBook) int { return a.ID - b.ID })
	return books, nil
}

func (r *BookRepository) Upsert(_ context.Context, zone string, userID int, books []book.Book) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	z, ok := r.zones[zone]
	if !ok {
		z = make(map[int]book.StoredBook)
		r.zones[zone] = z
	}

	now := r.now().UTC()
	for _, b := range books {
		z[b.ID] = book.StoredBook{Book: b, Zone: zone, UpdatedAt: now, UpdatedBy: userID}
	}
	return len(books), nil
}

func (r *BookRepository) Delete(_ context.Context, zone string, ids []int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	z := r.zones[zone]
	deleted := 0
	for _, id := range ids {
		if _, ok := z[id]; ok {
			delete(z, id)
			deleted++
		}
	}
	return deleted, nil
}
