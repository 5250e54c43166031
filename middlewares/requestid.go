package middlewares

import (
	"context"

	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/pkg/id"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
)

type requestIDKey struct{}

// maxRequestIDLength bounds ids accepted from upstream proxies.
const maxRequestIDLength = 128

var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string
	Headers        []string
}

type RequestIDOption func(*RequestIDConfig)

func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		cfg.Headers = headers
	}
}

func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

// RequestID reuses an incoming id header or generates a ULID, stores it on
// the request context and echoes it in the response.
func RequestID(opts ...RequestIDOption) web.Middleware {
	cfg := &RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      id.NewULID,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	extract := make([]web.ExtractorSource, 0, len(cfg.Headers))
	for _, h := range cfg.Headers {
		extract = append(extract, web.FromHeader(h))
	}
	extractor := web.NewExtractor(extract...)

	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			reqID, ok := extractor.Extract(c)
			if !ok || len(reqID) > maxRequestIDLength {
				reqID = cfg.Generator()
			}

			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.ResponseHeader, reqID)

			return next(c)
		}
	}
}

// GetRequestID returns the id set by RequestID.
func GetRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey{}).(string)
	return v
}

// RequestIDExtractor adds request_id to every log record made with the
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.StringExtractor("request_id", GetRequestID)
}
