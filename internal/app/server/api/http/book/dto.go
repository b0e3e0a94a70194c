package book

import "bookshelf/internal/domain/book"

type listInput struct {
	Zone string `path:"zone" pattern:"^[A-Za-z0-9_]{1,64}$" doc:"Zone name"`
}

type listOutput struct {
	Body ListResponse
}

type ListResponse struct {
	Books []book.Book `json:"books"`
}

type upsertInput struct {
	Zone string `path:"zone" pattern:"^[A-Za-z0-9_]{1,64}$" doc:"Zone name"`
	Body UpsertRequest
}

type UpsertRequest struct {
	Books []book.Book `json:"books" minItems:"1"`
}

type deleteInput struct {
	Zone string `path:"zone" pattern:"^[A-Za-z0-9_]{1,64}$" doc:"Zone name"`
	Body DeleteRequest
}

type DeleteRequest struct {
	IDs []int `json:"ids" minItems:"1"`
}

type countOutput struct {
	Body CountResponse
}

type CountResponse struct {
	Count int `json:"count"`
}
