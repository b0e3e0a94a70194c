package book

import "time"

// TypeName is the object type name books are registered under.
const TypeName = "Book"

// Book is the only record type of the store.
type Book struct {
	ID          int    `json:"id" minimum:"1" doc:"Book id, assigned by the client"`
	Title       string `json:"title" maxLength:"256"`
	Description string `json:"description" maxLength:"4096"`
}

// StoredBook is a book together with the bookkeeping the store keeps for it.
type StoredBook struct {
	Book
	Zone      string    `json:"zone"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy int       `json:"updated_by"`
}

// MaxID returns the largest id in books, or 0 for an empty slice.
func MaxID(books []Book) int {
	max := 0
	for _, b := range books {
		if b.ID > max {
			max = b.ID
		}
	}
	return max
}
