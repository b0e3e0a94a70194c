package logger

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Logger logs every handled HTTP request.
type Logger struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Logger {
	return &Logger{
		log: log.With(slog.String("component", "http_logger")),
	}
}

func (l *Logger) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		method := ctx.Method()
		path := ctx.URL().Path
		requestID := ctx.Header("X-Request-ID")

		next(ctx)

		status := ctx.Status()
		attrs := []any{
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote_addr", ctx.RemoteAddr()),
		}
		if requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}

		if status >= 500 {
			l.log.Error("HTTP request", attrs...)
			return
		}
		l.log.Info("HTTP request", attrs...)
	}
}
