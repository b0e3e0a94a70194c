package client

import (
	"context"

	"bookshelf/internal/domain/book"
	"bookshelf/internal/domain/schema"
	"bookshelf/internal/domain/zone"
)

// Backend is the store as seen by CloudDB.
type Backend interface {
	RegisterSchema(ctx context.Context, info schema.ObjectTypeInfo) error
	OpenZone(ctx context.Context, cfg zone.Config) error
	Query(ctx context.Context, zoneName string) (*Snapshot, error)
	Upsert(ctx context.Context, zoneName string, books []book.Book) (int, error)
	Delete(ctx context.Context, zoneName string, ids []int) (int, error)
}

// Snapshot is a forward-only cursor over a query result. Release it once
// iteration is done; a released snapshot yields nothing.
type Snapshot struct {
	books    []book.Book
	pos      int
	released bool
}

func NewSnapshot(books []book.Book) *Snapshot {
	return &Snapshot{books: books}
}

func (s *Snapshot) HasNext() bool {
	return !s.released && s.pos < len(s.books)
}

func (s *Snapshot) Next() (book.Book, bool) {
	if !s.HasNext() {
		return book.Book{}, false
	}
	b := s.books[s.pos]
	s.pos++
	return b, true
}

func (s *Snapshot) Len() int {
	return len(s.books)
}

func (s *Snapshot) Release() {
	s.released = true
	s.books = nil
}
