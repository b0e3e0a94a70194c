package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Validator resolves a session credential to a user id.
type Validator interface {
	Validate(ctx context.Context, token string) (int, error)
}

type Auth struct {
	api     huma.API
	session Validator
	log     *slog.Logger
}

func New(api huma.API, session Validator, log *slog.Logger) *Auth {
	return &Auth{
		api:     api,
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const (
	UserIDKey contextKey = "userID"
	TokenKey  contextKey = "sessionToken"
)

const bearerPrefix = "Bearer "

// Middleware rejects requests without a valid bearer session and puts the
// user id and raw token into the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" {
			a.log.Debug("missing bearer token", "path", ctx.URL().Path)
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		userID, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Warn("session rejected", "path", ctx.URL().Path, "error", err)
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		newCtx := WithToken(WithUserID(ctx.Context(), userID), token)
		next(huma.WithContext(ctx, newCtx))
	}
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}
