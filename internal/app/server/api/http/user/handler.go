package user

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/httperr"
	"bookshelf/internal/domain/user"
)

// TokenIssuer mints identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int, name string) (string, time.Time, error)
}

type Handler struct {
	service    user.Servicer
	issuer     TokenIssuer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service user.Servicer, issuer TokenIssuer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		issuer:     issuer,
		log:        log.With("component", "user_handler"),
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) register(ctx context.Context, input *registerInput) (*registerOutput, error) {
	userID, err := h.service.Register(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	return &registerOutput{
		Body: RegisterResponse{ID: userID, Status: "Ok"},
	}, nil
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	u, err := h.service.Authenticate(ctx, input.Body.Login, input.Body.Password)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	token, expiresAt, err := h.issuer.Issue(u.ID, u.DisplayName())
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	return &loginOutput{
		Body: LoginResponse{AccessToken: token, ExpiresAt: expiresAt},
	}, nil
}
