package zone

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/httperr"
	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/domain/zone"
)

type Handler struct {
	service    zone.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service zone.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "zone_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.openOp(), h.open)
}

func (h *Handler) open(ctx context.Context, input *openInput) (*openOutput, error) {
	userID, ok := auth.GetUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	z, err := h.service.Open(ctx, userID, input.Body)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}
	return &openOutput{Body: z}, nil
}
