package session

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"bookshelf/internal/app/server/api/http/httperr"
	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/domain/session"
)

type Handler struct {
	service session.Servicer
	log     *slog.Logger
	public  huma.Middlewares
	private huma.Middlewares
}

// NewHandler takes separate middlewares for sign-in (public) and sign-out (authenticated).
func NewHandler(service session.Servicer, log *slog.Logger, public, private huma.Middlewares) *Handler {
	return &Handler{
		service: service,
		log:     log.With("component", "session_handler"),
		public:  public,
		private: private,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.signInOp(), h.signIn)
	huma.Register(api, h.signOutOp(), h.signOut)
}

func (h *Handler) signIn(ctx context.Context, input *signInInput) (*signInOutput, error) {
	res, err := h.service.SignIn(ctx, input.Body.Provider, input.Body.Token)
	if err != nil {
		return nil, httperr.From(h.log, err)
	}

	return &signInOutput{
		Body: SignInResponse{
			Session:   res.Session,
			ExpiresAt: res.ExpiresAt,
			User:      UserInfo{ID: res.UserID, DisplayName: res.DisplayName},
		},
	}, nil
}

func (h *Handler) signOut(ctx context.Context, _ *struct{}) (*struct{}, error) {
	token, ok := auth.GetToken(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.SignOut(ctx, token); err != nil {
		return nil, httperr.From(h.log, err)
	}
	return nil, nil
}
