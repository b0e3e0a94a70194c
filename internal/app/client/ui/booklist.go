// Package ui adapts the data-access facade to what the CLI shows.
package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/client"
	"bookshelf/internal/domain/book"
)

var (
	ErrNotFound   = errors.New("book not found")
	ErrEmptyTitle = errors.New("title must not be empty")
)

var headerColor = color.New(color.FgCyan, color.Bold)

// BookList is the in-memory list the user works with, kept in step with a
// CloudDB. Items stay ordered as they arrived.
type BookList struct {
	db  *client.CloudDB
	log *slog.Logger

	mu    sync.RWMutex
	items []book.Book
}

func NewBookList(db *client.CloudDB, log *slog.Logger) *BookList {
	return &BookList{
		db:  db,
		log: log.With("component", "book_list"),
	}
}

// OnStart replaces the items with an initial or refreshed fetch.
func (l *BookList) OnStart(books []book.Book) {
	items := make([]book.Book, len(books))
	copy(items, books)

	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
}

// OnAddItem updates the item with the same id in place. Otherwise b is
// appended.
func (l *BookList) OnAddItem(b book.Book) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, item := range l.items {
		if item.ID == b.ID {
			l.items[i] = b
			return
		}
	}
	l.items = append(l.items, b)
}

// Items returns a copy of the current items.
func (l *BookList) Items() []book.Book {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	items := make([]book.Book, len(l.items))
	copy(items, l.items)
	return items
}

func (l *BookList) Len() int {
	if l == nil {
		return 0
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

func (l *BookList) Find(id int) (book.Book, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if item.ID == id {
			return item, true
		}
	}
	return book.Book{}, false
}

// Refresh refetches the zone from the store.
func (l *BookList) Refresh(ctx context.Context) error {
	books, err := l.db.FetchAll(ctx, client.PolicyCloudOnly).Wait(ctx)
	if err != nil {
		return err
	}
	l.OnStart(books)
	return nil
}

// Add creates a book with the next free id.
func (l *BookList) Add(ctx context.Context, title, description string) (book.Book, error) {
	b := book.Book{
		ID:          l.db.CurrentMaxID() + 1,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	return l.save(ctx, b)
}

// Edit overwrites the book with the given id.
func (l *BookList) Edit(ctx context.Context, id int, title, description string) (book.Book, error) {
	if _, ok := l.Find(id); !ok {
		return book.Book{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	b := book.Book{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	return l.save(ctx, b)
}

// Delete removes the book locally, then from the store.
func (l *BookList) Delete(ctx context.Context, id int) error {
	l.mu.Lock()
	idx := -1
	for i, item := range l.items {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	removed := l.items[idx]
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	l.mu.Unlock()

	_, err := l.db.Delete(ctx, []book.Book{removed}).Wait(ctx)
	return err
}

// Render writes the items as a table.
func (l *BookList) Render(w io.Writer) error {
	items := l.Items()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No books yet.")
		return err
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION")
	for _, b := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", b.ID, b.Title, b.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	header, rows, _ := strings.Cut(buf.String(), "\n")
	if _, err := headerColor.Fprintln(w, header); err != nil {
		return err
	}
	_, err := io.WriteString(w, rows)
	return err
}

func (l *BookList) save(ctx context.Context, b book.Book) (book.Book, error) {
	if b.Title == "" {
		return book.Book{}, ErrEmptyTitle
	}

	saved, err := l.db.InsertOrUpdate(ctx, b).Wait(ctx)
	if err != nil {
		return book.Book{}, err
	}
	l.OnAddItem(saved)
	l.log.Debug("book saved", "id", saved.ID)
	return saved, nil
}
