package works_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/pkg/cache"
)

const sample = `[
	{"id": 2, "title": "لوگو", "image": "/img/2.jpg"},
	{"id": 7, "title": "وب‌سایت", "image": "/img/7.jpg"},
	{"id": 4, "title": "کارت ویزیت", "image": "/img/4.jpg"}
]`

type stubSource struct {
	name  string
	data  atomic.Value
	err   atomic.Pointer[error]
	calls atomic.Int32
}

func newStub(name, data string) *stubSource {
	s := &stubSource{name: name}
	s.data.Store(data)
	return s
}

func (s *stubSource) fail(err error) {
	if err == nil {
		s.err.Store(nil)
		return
	}
	s.err.Store(&err)
}

func (s *stubSource) Fetch(context.Context) ([]byte, error) {
	s.calls.Add(1)
	if err := s.err.Load(); err != nil {
		return nil, *err
	}
	return []byte(s.data.Load().(string)), nil
}

func (s *stubSource) String() string { return "stub:" + s.name }

func ids(items []works.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("sorts by id descending", func(t *testing.T) {
		t.Parallel()

		items, err := works.Decode([]byte(sample))
		require.NoError(t, err)
		require.Equal(t, []int{7, 4, 2}, ids(items))
		require.Equal(t, "وب‌سایت", items[0].Title)
	})

	t.Run("keeps source order of equal ids", func(t *testing.T) {
		t.Parallel()

		items, err := works.Decode([]byte(`[{"id":1,"title":"a"},{"id":3,"title":"b"},{"id":1,"title":"c"}]`))
		require.NoError(t, err)
		require.Equal(t, "b", items[0].Title)
		require.Equal(t, "a", items[1].Title)
		require.Equal(t, "c", items[2].Title)
	})

	t.Run("empty array and null give empty list", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{"[]", "null"} {
			items, err := works.Decode([]byte(doc))
			require.NoError(t, err)
			require.NotNil(t, items)
			require.Empty(t, items)
		}
	})

	t.Run("malformed document", func(t *testing.T) {
		t.Parallel()

		_, err := works.Decode([]byte(`{"id":1}`))
		require.ErrorIs(t, err, works.ErrDecode)
	})
}

func TestNewSource(t *testing.T) {
	t.Parallel()

	embedded := fstest.MapFS{"data/works.json": {Data: []byte(sample)}}

	t.Run("embedded file", func(t *testing.T) {
		t.Parallel()

		src, err := works.NewSource("embed:data/works.json", works.SourceOptions{Embedded: embedded})
		require.NoError(t, err)

		data, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.JSONEq(t, sample, string(data))
	})

	t.Run("embedded without filesystem", func(t *testing.T) {
		t.Parallel()

		_, err := works.NewSource("embed:works.json", works.SourceOptions{})
		require.ErrorIs(t, err, works.ErrUnsupportedSource)
	})

	t.Run("local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "works.json")
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

		src, err := works.NewSource("file://"+filepath.ToSlash(path), works.SourceOptions{})
		require.NoError(t, err)

		data, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.JSONEq(t, sample, string(data))
	})

	t.Run("http source", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Accept"))
			_, _ = w.Write([]byte(sample))
		}))
		defer srv.Close()

		src, err := works.NewSource(srv.URL+"/works.json", works.SourceOptions{})
		require.NoError(t, err)

		data, err := src.Fetch(context.Background())
		require.NoError(t, err)
		require.JSONEq(t, sample, string(data))
	})

	t.Run("http non-2xx is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		src, err := works.NewSource(srv.URL+"/works.json", works.SourceOptions{})
		require.NoError(t, err)

		_, err = src.Fetch(context.Background())
		require.Error(t, err)
	})

	t.Run("s3 without store factory", func(t *testing.T) {
		t.Parallel()

		_, err := works.NewSource("s3://bucket/works.json", works.SourceOptions{})
		require.ErrorIs(t, err, works.ErrUnsupportedSource)
	})

	t.Run("s3 without key", func(t *testing.T) {
		t.Parallel()

		_, err := works.NewSource("s3://bucket", works.SourceOptions{})
		require.ErrorIs(t, err, works.ErrUnsupportedSource)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		t.Parallel()

		_, err := works.NewSource("ftp://host/works.json", works.SourceOptions{})
		require.ErrorIs(t, err, works.ErrUnsupportedSource)
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("load caches the sorted list", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, cache.NewMemory[[]works.Item]())

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{7, 4, 2}, ids(items))

		_, err = cat.Load(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 1, src.calls.Load())
	})

	t.Run("callers cannot mutate the cached list", func(t *testing.T) {
		t.Parallel()

		cat := works.NewCatalog(newStub(t.Name(), sample), nil)

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		items[0].Title = "changed"

		again, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, "وب‌سایت", again[0].Title)
	})

	t.Run("source failure wraps ErrLoad", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		src.fail(errors.New("connection refused"))
		cat := works.NewCatalog(src, nil)

		_, err := cat.Load(context.Background())
		require.ErrorIs(t, err, works.ErrLoad)
	})

	t.Run("malformed document wraps ErrLoad and ErrDecode", func(t *testing.T) {
		t.Parallel()

		cat := works.NewCatalog(newStub(t.Name(), "not json"), nil)

		_, err := cat.Load(context.Background())
		require.ErrorIs(t, err, works.ErrLoad)
		require.ErrorIs(t, err, works.ErrDecode)
	})

	t.Run("find", func(t *testing.T) {
		t.Parallel()

		cat := works.NewCatalog(newStub(t.Name(), sample), nil)

		item, err := cat.Find(context.Background(), 4)
		require.NoError(t, err)
		require.Equal(t, "کارت ویزیت", item.Title)

		_, err = cat.Find(context.Background(), 99)
		require.ErrorIs(t, err, works.ErrNotFound)
	})

	t.Run("refresh replaces the list", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, nil, works.WithTTL(time.Hour))

		_, err := cat.Load(context.Background())
		require.NoError(t, err)

		src.data.Store(`[{"id":9,"title":"new","image":"/img/9.jpg"}]`)
		require.NoError(t, cat.Refresh(context.Background()))

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{9}, ids(items))
	})

	t.Run("failed refresh keeps the previous list", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, nil, works.WithTTL(time.Hour))
		require.NoError(t, cat.Refresh(context.Background()))

		src.fail(errors.New("timeout"))
		require.ErrorIs(t, cat.Refresh(context.Background()), works.ErrLoad)

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{7, 4, 2}, ids(items))
	})

	t.Run("previous list outlives the cache ttl while the source is down", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, nil, works.WithTTL(50*time.Millisecond))
		require.NoError(t, cat.Refresh(context.Background()))

		src.fail(errors.New("source down"))
		require.ErrorIs(t, cat.Refresh(context.Background()), works.ErrLoad)
		time.Sleep(80 * time.Millisecond)

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{7, 4, 2}, ids(items))

		calls := src.calls.Load()
		_, err = cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, calls, src.calls.Load(), "previous list is cached again")
	})

	t.Run("source recovers after serving the previous list", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, nil, works.WithTTL(time.Hour))
		_, err := cat.Load(context.Background())
		require.NoError(t, err)

		src.fail(errors.New("source down"))
		require.Error(t, cat.Refresh(context.Background()))

		src.fail(nil)
		src.data.Store(`[{"id":9,"title":"new","image":"/img/9.jpg"}]`)
		require.NoError(t, cat.Refresh(context.Background()))

		items, err := cat.Load(context.Background())
		require.NoError(t, err)
		require.Equal(t, []int{9}, ids(items))
	})
}

func TestRefreshInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		schedule string
		want     time.Duration
	}{
		{"", 10 * time.Minute},
		{"@every 10m", 10 * time.Minute},
		{"@hourly", time.Hour},
		{"*/5 * * * *", 5 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.schedule, func(t *testing.T) {
			t.Parallel()

			got, err := works.RefreshInterval(tt.schedule)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := works.RefreshInterval("whenever")
	require.Error(t, err)
}

func TestRefresher(t *testing.T) {
	t.Parallel()

	t.Run("invalid schedule", func(t *testing.T) {
		t.Parallel()

		cat := works.NewCatalog(newStub(t.Name(), sample), nil)
		_, err := works.NewRefresher(cat, "every tuesday", nil)
		require.Error(t, err)
	})

	t.Run("start warms the catalog", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		cat := works.NewCatalog(src, nil, works.WithTTL(time.Hour))
		r, err := works.NewRefresher(cat, "@hourly", nil)
		require.NoError(t, err)

		require.NoError(t, r.StartFunc()(context.Background()))
		require.EqualValues(t, 1, src.calls.Load())

		_, err = cat.Load(context.Background())
		require.NoError(t, err)
		require.EqualValues(t, 1, src.calls.Load())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, r.Shutdown()(ctx))
	})

	t.Run("failed warm-up does not fail start", func(t *testing.T) {
		t.Parallel()

		src := newStub(t.Name(), sample)
		src.fail(errors.New("down"))
		r, err := works.NewRefresher(works.NewCatalog(src, nil), "", nil)
		require.NoError(t, err)

		require.NoError(t, r.Start(context.Background()))
		require.NoError(t, r.Stop(context.Background()))
	})

	t.Run("stop without start", func(t *testing.T) {
		t.Parallel()

		r, err := works.NewRefresher(works.NewCatalog(newStub(t.Name(), sample), nil), "", nil)
		require.NoError(t, err)
		require.NoError(t, r.Stop(context.Background()))
	})
}
