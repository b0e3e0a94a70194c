package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/exp/slog"

	"bookshelf/internal/domain/book"
)

type BookRepository struct {
	db  DB
	log *slog.Logger
}

func NewBookRepository(db DB, log *slog.Logger) *BookRepository {
	return &BookRepository{
		db:  db,
		log: log.With("component", "book_repository"),
	}
}

func (r *BookRepository) List(ctx context.Context, zone string) ([]book.StoredBook, error) {
	const query = `
		SELECT zone, id, title, description, updated_by, updated_at
		FROM books
		WHERE zone = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, zone)
	if err != nil {
		r.log.Error("failed to list books", "zone", zone, "error", err)
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]book.StoredBook, 0)
	for rows.Next() {
		var b book.StoredBook
		if err := rows.Scan(&b.Zone, &b.ID, &b.Title, &b.Description, &b.UpdatedBy, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// Upsert writes the whole batch in one transaction.
func (r *BookRepository) Upsert(ctx context.Context, zone string, userID int, books []book.Book) (int, error) {
	const query = `
		INSERT INTO books (zone, id, title, description, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (zone, id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()`

	batch := &pgx.Batch{}
	for _, b := range books {
		batch.Queue(query, zone, b.ID, b.Title, b.Description, userID)
	}

	var affected int
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for range books {
			tag, err := results.Exec()
			if err != nil {
				_ = results.Close()
				return err
			}
			affected += int(tag.RowsAffected())
		}
		return results.Close()
	})
	if err != nil {
		r.log.Error("failed to upsert books", "zone", zone, "count", len(books), "error", err)
		return 0, fmt.Errorf("upsert books: %w", err)
	}

	return affected, nil
}

func (r *BookRepository) Delete(ctx context.Context, zone string, ids []int) (int, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM books WHERE zone = $1 AND id = ANY($2)`, zone, ids)
	if err != nil {
		r.log.Error("failed to delete books", "zone", zone, "error", err)
		return 0, fmt.Errorf("delete books: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
