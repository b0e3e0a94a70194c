package schema

import "bookshelf/internal/domain/schema"

type registerInput struct {
	Body schema.ObjectTypeInfo
}

type registerOutput struct {
	Body schema.RegisterResult
}
