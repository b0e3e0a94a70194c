package book

import "errors"

var (
	ErrNotFound    = errors.New("book not found")
	ErrInvalidData = errors.New("invalid book data")
)
