package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor reads one request-scoped attribute from ctx.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// StringExtractor logs value(ctx) under name whenever it is non-empty.
//
//	logger.StringExtractor("request_id", middlewares.GetRequestID)
func StringExtractor(name string, value func(context.Context) string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v := value(ctx)
		if v == "" {
			return slog.Attr{}, false
		}
		return slog.String(name, v), true
	}
}

// Decorate returns a handler that runs extractors on every record before
// passing it to next. Nil extractors are skipped.
func Decorate(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	h := &contextHandler{next: next}
	for _, ex := range extractors {
		if ex != nil {
			h.extractors = append(h.extractors, ex)
		}
	}
	if len(h.extractors) == 0 {
		return next
	}
	return h
}

type contextHandler struct {
	next       slog.Handler
	extractors []ContextExtractor
}

func (h *contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	attrs := make([]slog.Attr, 0, len(h.extractors))
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			attrs = append(attrs, attr)
		}
	}
	rec.AddAttrs(attrs...)
	return h.next.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{next: h.next.WithAttrs(attrs), extractors: h.extractors}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{next: h.next.WithGroup(name), extractors: h.extractors}
}
