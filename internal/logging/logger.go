// Package logging sets up the process-wide slog logger and derives
// request-scoped loggers from it.
//
// The server logs to stdout. supplierctl logs to stderr so a CSV export
// written to stdout stays clean.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/suppliers/internal/core"
)

// Setup installs a stdout logger as the slog default.
//
// level is one of debug, info, warn, error (anything else means info);
// format is text or json (anything else means text).
func Setup(level, format string) *slog.Logger {
	return SetupWriter(os.Stdout, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format string) *slog.Logger {
	logger := slog.New(newHandler(w, level, format))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns the default logger tagged with the chi request id and,
// on admin routes, the acting admin ("api-key" for key-authenticated calls).
//
//	logging.FromContext(r.Context()).Info("export written", "format", format)
func FromContext(ctx context.Context) *slog.Logger {
	var attrs []any
	if id := middleware.GetReqID(ctx); id != "" {
		attrs = append(attrs, "request_id", id)
	}
	if actor := core.GetActorFromContext(ctx); actor != "" {
		attrs = append(attrs, "actor", actor)
	}

	logger := slog.Default()
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(attrs...)
}

// WithFields is FromContext plus operation fields, for multi-step work such
// as an import preview:
//
//	logger := logging.WithFields(ctx, "file", fileName)
//	logger.Info("import preview served", "accepted", stats.Accepted)
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
