package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedDebug bool
	}{
		{
			name:          "local environment",
			env:           envLocal,
			expectedDebug: true,
		},
		{
			name:          "dev environment",
			env:           envDev,
			expectedDebug: true,
		},
		{
			name:          "prod environment",
			env:           envProd,
			expectedDebug: false,
		},
		{
			name:          "unknown environment falls back to prod",
			env:           "staging",
			expectedDebug: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.env)
			require.NotNil(t, logger)
			ctx := context.Background()
			assert.Equal(t, tt.expectedDebug, logger.Enabled(ctx, slog.LevelDebug))
			assert.True(t, logger.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	logger := setupPrettySlog()
	require.NotNil(t, logger)

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestPrettyHandler_WritesMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("component", "cloud_db").Info("zone opened", "zone", "QuickStartDemo")

	out := buf.String()
	assert.Contains(t, out, "zone opened")
	assert.Contains(t, out, `"component": "cloud_db"`)
	assert.Contains(t, out, `"zone": "QuickStartDemo"`)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log := Console(&buf, slog.LevelWarn)

	log.Info("hidden")
	log.Warn("store unreachable", "zone", "QuickStartDemo")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "store unreachable")
}
