package book

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

var bearer = []map[string][]string{{"bearer": {}}}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "books-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/zones/{zone}/books",
		Summary:     "Query all books of a zone",
		Tags:        []string{"books"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) upsertOp() huma.Operation {
	return huma.Operation{
		OperationID: "books-upsert",
		Method:      http.MethodPut,
		Path:        "/api/v1/zones/{zone}/books",
		Summary:     "Insert or replace books by id",
		Tags:        []string{"books"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "books-delete",
		Method:      http.MethodPost,
		Path:        "/api/v1/zones/{zone}/books/delete",
		Summary:     "Delete books by id",
		Description: "Unknown ids are skipped. Returns the number of deleted books.",
		Tags:        []string{"books"},
		Security:    bearer,
		Middlewares: h.middleware,
	}
}
