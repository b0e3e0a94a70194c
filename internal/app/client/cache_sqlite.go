package client

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"bookshelf/internal/domain/book"
)

// Cache is the on-device copy of opened zones.
type Cache interface {
	List(ctx context.Context, zoneName string) ([]book.Book, error)
	Replace(ctx context.Context, zoneName string, books []book.Book) error
	Upsert(ctx context.Context, zoneName string, books []book.Book) error
	Delete(ctx context.Context, zoneName string, ids []int) error
	Close() error
}

type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.initTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache tables: %w", err)
	}

	return c, nil
}

func (c *SQLiteCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS books (
			zone TEXT NOT NULL,
			id INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cached_at DATETIME NOT NULL,
			PRIMARY KEY (zone, id)
		);
	`)
	return err
}

func (c *SQLiteCache) List(ctx context.Context, zoneName string) ([]book.Book, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, title, description FROM books WHERE zone = ? ORDER BY id`, zoneName)
	if err != nil {
		return nil, fmt.Errorf("list cached books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description); err != nil {
			return nil, fmt.Errorf("scan cached book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// Replace makes the cached zone an exact copy of books.
func (c *SQLiteCache) Replace(ctx context.Context, zoneName string, books []book.Book) error {
	return c.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE zone = ?`, zoneName); err != nil {
			return err
		}
		return upsertBooks(ctx, tx, zoneName, books)
	})
}

func (c *SQLiteCache) Upsert(ctx context.Context, zoneName string, books []book.Book) error {
	return c.inTx(ctx, func(tx *sql.Tx) error {
		return upsertBooks(ctx, tx, zoneName, books)
	})
}

func (c *SQLiteCache) Delete(ctx context.Context, zoneName string, ids []int) error {
	return c.inTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM books WHERE zone = ? AND id = ?`, zoneName, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

func (c *SQLiteCache) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("write cache: %w", err)
	}
	return tx.Commit()
}

func upsertBooks(ctx context.Context, tx *sql.Tx, zoneName string, books []book.Book) error {
	now := time.Now().UTC()
	for _, b := range books {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO books (zone, id, title, description, cached_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (zone, id) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				cached_at = excluded.cached_at
		`, zoneName, b.ID, b.Title, b.Description, now); err != nil {
			return err
		}
	}
	return nil
}
