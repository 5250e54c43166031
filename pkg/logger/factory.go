package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the output format and minimum level of the stdout handler.
type Config struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string
	// Format is json or text. Defaults to json.
	Format string
	Sentry SentryConfig
}

// New creates a stdout logger with optional context extractors.
// When cfg.Sentry.DSN is set, records are fanned out to Sentry as well.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	var h slog.Handler = newStdoutHandler(os.Stdout, cfg)
	if cfg.Sentry.DSN != "" {
		h = withSentry(h, cfg.Sentry)
	}
	return slog.New(Decorate(h, extractors...))
}

// Discard returns a logger that drops every record. Components fall back
// to it when no logger is configured.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel maps a level name to slog.Level. Unknown names resolve to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

func newStdoutHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
