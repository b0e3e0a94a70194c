package zone

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bookshelf/internal/app/server/api/http/middleware/auth"
	"bookshelf/internal/domain/zone"
	"bookshelf/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Open(ctx context.Context, userID int, cfg zone.Config) (zone.Zone, error) {
	args := m.Called(ctx, userID, cfg)
	return args.Get(0).(zone.Zone), args.Error(1)
}

func (m *MockService) Authorize(ctx context.Context, name string, userID int) error {
	return m.Called(ctx, name, userID).Error(0)
}

// asUser injects a fixed user id the way the auth middleware does.
func asUser(userID int) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), userID)))
	}
}

func TestHandler_open(t *testing.T) {
	demo := zone.Config{Name: "QuickStartDemo", Sync: zone.SyncCloudCache, Access: zone.AccessPublic}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "opened", wantStatus: http.StatusOK},
		{name: "access mismatch", err: zone.ErrConflict, wantStatus: http.StatusConflict},
		{name: "private zone of another user", err: zone.ErrForbidden, wantStatus: http.StatusForbidden},
		{name: "local only", err: zone.ErrLocalOnly, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, api := humatest.New(t)
			svc := new(MockService)
			NewHandler(svc, logger.Discard(), huma.Middlewares{asUser(5)}).SetupRoutes(api)

			svc.On("Open", mock.Anything, 5, demo).Return(zone.Zone{Name: demo.Name, Sync: demo.Sync, Access: demo.Access, OwnerID: 5}, tt.err)

			resp := api.Post("/api/v1/zones", map[string]any{
				"name":            demo.Name,
				"sync_property":   "cloud_cache",
				"access_property": "public",
			})

			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandler_open_NoUser(t *testing.T) {
	_, api := humatest.New(t)
	svc := new(MockService)
	NewHandler(svc, logger.Discard(), huma.Middlewares{}).SetupRoutes(api)

	resp := api.Post("/api/v1/zones", map[string]any{
		"name": "Demo", "sync_property": "cloud_cache", "access_property": "public",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
