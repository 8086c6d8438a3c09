// internal/pkg/logger/logger.go

// Package logger configures the process-wide slog logger.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	ContextKeyRequestID ContextKey = "request_id"
	ContextKeyTraceID   ContextKey = "trace_id"
	ContextKeyQueryID   ContextKey = "query_id"
)

// SetupLogger initializes the default slog logger and returns it.
func SetupLogger(level string, format string) *slog.Logger {
	logger := NewLogger(level, format, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewLogger builds a slog logger writing to w.
func NewLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       ParseLevel(level),
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	if service := os.Getenv("SERVICE_NAME"); service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", service)})
	}
	if env := os.Getenv("APP_ENV"); env != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("env", env)})
	}

	return slog.New(handler)
}

// ParseLevel maps a level name onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithContext returns a logger carrying any tracing identifiers present in
// the context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	attrs := extractContextAttrs(ctx)
	if len(attrs) > 0 {
		return logger.With(attrs...)
	}
	return logger
}

func extractContextAttrs(ctx context.Context) []any {
	var attrs []any
	for _, key := range []ContextKey{ContextKeyRequestID, ContextKeyTraceID, ContextKeyQueryID} {
		val := ctx.Value(key)
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			if v != "" {
				attrs = append(attrs, slog.String(string(key), v))
			}
		case uuid.UUID:
			attrs = append(attrs, slog.String(string(key), v.String()))
		default:
			attrs = append(attrs, slog.Any(string(key), v))
		}
	}
	return attrs
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		if t, ok := a.Value.Any().(time.Time); ok {
			a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
		}
	}
	return a
}
