package schema

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported schema format version")
	ErrInvalidSchema     = errors.New("invalid schema")
	ErrTypeNotRegistered = errors.New("object type is not registered")
)
