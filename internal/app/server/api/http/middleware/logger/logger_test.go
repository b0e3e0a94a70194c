package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	l := New(slog.New(slog.NewJSONHandler(&buf, nil)))

	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "boom",
		Method:      http.MethodGet,
		Path:        "/boom",
		Middlewares: huma.Middlewares{l.Middleware()},
	}, func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, huma.Error500InternalServerError("internal error")
	})
	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Middlewares: huma.Middlewares{l.Middleware()},
	}, func(_ context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	api.Get("/ping", "X-Request-ID: req-1")
	api.Get("/boom")

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "/ping", first["path"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "http_logger", first["component"])

	assert.Equal(t, "ERROR", second["level"])
	assert.EqualValues(t, http.StatusInternalServerError, second["status"])
	assert.NotContains(t, second, "request_id")
}
