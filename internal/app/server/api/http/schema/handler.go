package schema

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/httperr"
	"bookshelf/internal/domain/schema"
)

type Handler struct {
	service    schema.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service schema.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "schema_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	res, err := h.service.Register(ctx, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &registerOutput{Body: res}, nil
}
