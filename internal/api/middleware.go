package api

import (
	"log/slog"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/tyrius02/next-gen-vision/internal/logging"
)

// requestLogLevel maps a completed request to a log level. Preflight
// requests stay at debug so browser chatter does not drown out traffic
// worth reading.
func requestLogLevel(method string, status int) slog.Level {
	switch {
	case method == "OPTIONS":
		return slog.LevelDebug
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// HTTPLoggingMiddleware logs each request once it completes. Streaming
// endpoints log on disconnect, so long durations on /api/events are
// normal.
func HTTPLoggingMiddleware(ctx huma.Context, next func(huma.Context)) {
	start := time.Now()
	method := ctx.Method()

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", ctx.URL().Path),
		slog.String("remote_addr", ctx.RemoteAddr()),
	}
	if query := ctx.URL().RawQuery; query != "" {
		attrs = append(attrs, slog.String("query", query))
	}
	if ua := ctx.Header("User-Agent"); ua != "" {
		attrs = append(attrs, slog.String("user_agent", ua))
	}

	next(ctx)

	status := ctx.Status()
	attrs = append(attrs,
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	logger := logging.GetLogger("http")
	logger.LogAttrs(ctx.Context(), requestLogLevel(method, status), "Request completed", attrs...)
}
