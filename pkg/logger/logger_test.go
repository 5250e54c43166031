package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ctxKey struct{}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	requestID := StringExtractor("request_id", func(ctx context.Context) string {
		v, _ := ctx.Value(ctxKey{}).(string)
		return v
	})

	t.Run("adds extracted attrs", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(Decorate(newStdoutHandler(&buf, Config{}), requestID, nil))

		ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
		log.With("component", "orders").InfoContext(ctx, "hello")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "hello", rec["msg"])
		require.Equal(t, "req-1", rec["request_id"])
		require.Equal(t, "orders", rec["component"])
	})

	t.Run("empty value is skipped", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(Decorate(newStdoutHandler(&buf, Config{}), requestID))
		log.InfoContext(context.Background(), "hello")
		require.NotContains(t, buf.String(), "request_id")
	})

	t.Run("no extractors returns next", func(t *testing.T) {
		t.Parallel()
		next := slog.NewJSONHandler(&bytes.Buffer{}, nil)
		require.Same(t, next, Decorate(next, nil))
	})
}

func TestStdoutHandlerRespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(newStdoutHandler(&buf, Config{Level: "warn", Format: "text"}))
	log.Info("dropped")
	require.Zero(t, buf.Len())

	log.Warn("kept")
	require.Contains(t, buf.String(), "msg=kept")
}

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("sink down") }

func TestFanout(t *testing.T) {
	t.Parallel()

	var a, b bytes.Buffer
	h := fanout{
		slog.NewJSONHandler(&a, nil),
		slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(h)
	log.Info("info")
	log.Error("error")

	require.Contains(t, a.String(), `"msg":"info"`)
	require.Contains(t, a.String(), `"msg":"error"`)
	require.NotContains(t, b.String(), `"msg":"info"`)
	require.Contains(t, b.String(), `"msg":"error"`)
}

func TestFanoutKeepsGoingPastAFailingHandler(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	h := fanout{
		failingHandler{slog.NewJSONHandler(&bytes.Buffer{}, nil)},
		slog.NewJSONHandler(&out, nil),
	}
	rec := slog.NewRecord(time.Now(), slog.LevelError, "order rejected", 0)

	require.EqualError(t, h.Handle(context.Background(), rec), "sink down")
	require.Contains(t, out.String(), `"msg":"order rejected"`)
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	require.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
