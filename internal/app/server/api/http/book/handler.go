package book

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/httperr"
	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/domain/book"
)

// Recorder counts book writes.
type Recorder interface {
	BooksUpserted(n int)
	BooksDeleted(n int)
}

type Handler struct {
	service    book.Servicer
	metrics    Recorder
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service book.Servicer, metrics Recorder, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		metrics:    metrics,
		log:        log.With("component", "book_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, input *listInput) (*listOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	books, err := h.service.List(ctx, userID, input.Zone)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	if books == nil {
		books = []book.Book{}
	}

	return &listOutput{Body: ListResponse{Books: books}}, nil
}

func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*countOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Upsert(ctx, userID, input.Zone, input.Body.Books)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	h.metrics.BooksUpserted(n)

	return &countOutput{Body: CountResponse{Count: n}}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*countOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	n, err := h.service.Delete(ctx, userID, input.Zone, input.Body.IDs)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	h.metrics.BooksDeleted(n)

	return &countOutput{Body: CountResponse{Count: n}}, nil
}
