package book

import "context"

// Repository stores books per zone.
type Repository interface {
	List(ctx context.Context, zone string) ([]StoredBook, error)
	Upsert(ctx context.Context, zone string, userID int, books []Book) (int, error)
	Delete(ctx context.Context, zone string, ids []int) (int, error)
}
