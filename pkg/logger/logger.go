package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// New creates a new structured logger that implements interfaces.Logger
func New(service string, level slog.Level) interfaces.Logger {
	return newWithWriter(service, level, os.Stdout)
}

// NewWithFiles writes to stdout and to <logDir>/<service>.log. If the file
// cannot be opened the logger falls back to stdout only.
func NewWithFiles(service string, level slog.Level, logDir string) interfaces.Logger {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		l := New(service, level)
		l.Warn("Falling back to stdout logging", "log_dir", logDir, "error", err)
		return l
	}

	path := filepath.Join(logDir, service+".log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l := New(service, level)
		l.Warn("Falling back to stdout logging", "log_file", path, "error", err)
		return l
	}

	return newWithWriter(service, level, io.MultiWriter(os.Stdout, file))
}

func newWithWriter(service string, level slog.Level, w io.Writer) interfaces.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}

	handler := slog.NewJSONHandler(w, opts)

	baseLogger := slog.New(handler).With(
		slog.String("service", service),
		slog.Int("pid", os.Getpid()),
		slog.String("go_version", runtime.Version()),
	)

	return NewAdapter(baseLogger)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// ContextWithRequestID stores a request id for later log enrichment
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the request id stored in ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithContext creates a logger with context values
func WithContext(ctx context.Context, logger interfaces.Logger) interfaces.Logger {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return logger.With(slog.String("request_id", requestID))
	}
	return logger
}

// WithError adds an error to the logger
func WithError(logger interfaces.Logger, err error) interfaces.Logger {
	if err != nil {
		return logger.With(slog.String("error", err.Error()))
	}
	return logger
}

// LoggerAdapter implements interfaces.Logger using slog
type LoggerAdapter struct {
	logger *slog.Logger
}

// NewAdapter creates a new logger adapter
func NewAdapter(logger *slog.Logger) interfaces.Logger {
	return &LoggerAdapter{logger: logger}
}

func (l *LoggerAdapter) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *LoggerAdapter) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *LoggerAdapter) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *LoggerAdapter) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *LoggerAdapter) With(args ...any) interfaces.Logger {
	return &LoggerAdapter{
		logger: l.logger.With(args...),
	}
}

// Discard returns a logger that drops everything, for tests and tools
func Discard() interfaces.Logger {
	return NewAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var _ interfaces.Logger = (*LoggerAdapter)(nil)
