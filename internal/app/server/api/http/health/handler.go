package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	pingers    []Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(log *slog.Logger, middleware huma.Middlewares, pingers ...Pinger) *Handler {
	return &Handler{
		pingers:    pingers,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	for _, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.log.Error("health check failed", "error", err)
			return nil, huma.Error503ServiceUnavailable("storage unavailable")
		}
	}

	return &Output{
		Body: Response{Status: "OK"},
	}, nil
}
