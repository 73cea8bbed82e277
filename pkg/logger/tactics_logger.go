// Package logger builds the process zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config for logger
type Config struct {
	Level   string
	Output  io.Writer
	Service string
	Pretty  bool // human-readable console output, for development
}

type ctxKey string

// RequestIDKey carries the request id through a context.
const RequestIDKey ctxKey = "request_id"

var (
	defaultLogger zerolog.Logger
	once          sync.Once
)

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// New creates a logger from cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	if cfg.Service == "" {
		cfg.Service = "tactics"
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", cfg.Service).
		Logger()
}

// Init sets the default logger once.
func Init(cfg Config) {
	once.Do(func() {
		defaultLogger = New(cfg)
	})
}

// Default returns the default logger, initializing it at info level if needed.
func Default() *zerolog.Logger {
	Init(Config{Level: "info"})
	return &defaultLogger
}

// WithRequestID stores a request id for FromContext.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// FromContext returns l with request_id attached when ctx carries one.
func FromContext(ctx context.Context, l zerolog.Logger) zerolog.Logger {
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		return l.With().Str("request_id", id).Logger()
	}
	return l
}

// Package-level shortcuts on the default logger.
func Debug() *zerolog.Event { return Default().Debug() }
func Info() *zerolog.Event  { return Default().Info() }
func Warn() *zerolog.Event  { return Default().Warn() }
func Error() *zerolog.Event { return Default().Error() }
