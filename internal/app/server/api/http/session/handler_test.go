package session

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/domain/identity"
	"bookshelf/internal/domain/session"
	"bookshelf/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SignIn(ctx context.Context, provider, token string) (session.SignInResult, error) {
	args := m.Called(ctx, provider, token)
	return args.Get(0).(session.SignInResult), args.Error(1)
}

func (m *MockService) Validate(ctx context.Context, token string) (int, error) {
	args := m.Called(ctx, token)
	return args.Int(0), args.Error(1)
}

func (m *MockService) SignOut(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func setup(t *testing.T) (humatest.TestAPI, *MockService) {
	_, api := humatest.New(t)
	svc := new(MockService)
	authMW := auth.New(api, svc, logger.Discard())
	NewHandler(svc, logger.Discard(), huma.Middlewares{}, huma.Middlewares{authMW.Middleware()}).SetupRoutes(api)
	return api, svc
}

func TestHandler_signIn(t *testing.T) {
	api, svc := setup(t)
	expires := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	svc.On("SignIn", mock.Anything, "password", "jwt").Return(session.SignInResult{
		Session: "opaque", ExpiresAt: expires, UserID: 3, DisplayName: "alice",
	}, nil)

	resp := api.Post("/api/v1/auth/signin", map[string]any{"provider": "password", "token": "jwt"})
	require.Equal(t, http.StatusOK, resp.Code)

	var body SignInResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "opaque", body.Session)
	assert.Equal(t, UserInfo{ID: 3, DisplayName: "alice"}, body.User)
}

func TestHandler_signIn_Rejected(t *testing.T) {
	api, svc := setup(t)
	svc.On("SignIn", mock.Anything, "password", "expired").Return(session.SignInResult{}, identity.ErrInvalidToken)

	resp := api.Post("/api/v1/auth/signin", map[string]any{"provider": "password", "token": "expired"})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestHandler_signIn_UnknownProvider(t *testing.T) {
	api, svc := setup(t)

	resp := api.Post("/api/v1/auth/signin", map[string]any{"provider": "hms-account", "token": "x"})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	svc.AssertNotCalled(t, "SignIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_signOut(t *testing.T) {
	api, svc := setup(t)
	svc.On("Validate", mock.Anything, "opaque").Return(3, nil)
	svc.On("SignOut", mock.Anything, "opaque").Return(nil)

	resp := api.Post("/api/v1/auth/signout", "Authorization: Bearer opaque")

	assert.Equal(t, http.StatusNoContent, resp.Code)
	svc.AssertExpectations(t)
}

func TestHandler_signOut_Unauthenticated(t *testing.T) {
	api, svc := setup(t)

	resp := api.Post("/api/v1/auth/signout")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	svc.AssertNotCalled(t, "SignOut", mock.Anything, mock.Anything)
}
