package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehsanpg/mazzehabi/internal/config"
	"github.com/ehsanpg/mazzehabi/internal/server"
	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/pkg/logger"
	"github.com/ehsanpg/mazzehabi/pkg/mailer"
)

type formServer struct {
	*httptest.Server
	status atomic.Int32
	hits   atomic.Int32
}

func newFormServer(t *testing.T, status int) *formServer {
	t.Helper()
	fs := &formServer{}
	fs.status.Store(int32(status))
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		w.WriteHeader(int(fs.status.Load()))
	}))
	t.Cleanup(fs.Close)
	return fs
}

type outbox struct {
	mu   sync.Mutex
	sent []*mailer.Email
}

func (o *outbox) Send(_ context.Context, email *mailer.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, email)
	return nil
}

func (o *outbox) emails() []*mailer.Email {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]*mailer.Email(nil), o.sent...)
}

type fixture struct {
	srv   *server.Server
	form  *formServer
	inbox *outbox
}

func newFixture(t *testing.T, formStatus int, mutate ...func(*config.Config)) *fixture {
	t.Helper()
	f := &fixture{form: newFormServer(t, formStatus), inbox: &outbox{}}

	cfg := config.Default()
	cfg.Cookie.Secret = strings.Repeat("k", 32)
	cfg.Order.Endpoint = f.form.URL + "/formResponse"
	cfg.Mail.FromEmail = "shop@example.com"
	cfg.Mail.OwnerEmail = []string{"owner@example.com"}
	for _, fn := range mutate {
		fn(cfg)
	}

	srv, err := server.New(context.Background(), cfg, logger.Discard(),
		server.WithMailSender(f.inbox),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})
	f.srv = srv
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)
	return rec
}

func htmxRequest(method, target string, body url.Values) *http.Request {
	req := plainRequest(method, target, body)
	req.Header.Set("HX-Request", "true")
	return req
}

func plainRequest(method, target string, body url.Values) *http.Request {
	if body == nil {
		return httptest.NewRequest(method, target, nil)
	}
	req := httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func validOrder() url.Values {
	return url.Values{
		"name":        {"سارا"},
		"phone":       {"۰۹۱۲۳۴۵۶۷۸۹"},
		"orderTitle":  {"لوگو"},
		"description": {"یک لوگوی ساده"},
	}
}

func TestHome(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	rec := f.do(plainRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, `<html lang="fa" dir="rtl" data-theme="light">`)
	require.Contains(t, body, `id="order-section"`)
	require.Less(t, strings.Index(body, "/static/img/works/4.svg"), strings.Index(body, "/static/img/works/1.svg"))
	require.NotContains(t, body, "lightbox-open")
	require.Equal(t, "fa", rec.Header().Get("Content-Language"))
}

func TestHomeLanguageFromCookie(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	req := plainRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
	rec := f.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `<html lang="en" dir="ltr"`)
}

func TestToggleTheme(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	t.Run("htmx swaps the shell and announces the theme", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodPost, "/theme", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `id="shell" data-theme="dark"`)
		require.NotContains(t, rec.Body.String(), "<html")

		var trigger map[string]map[string]string
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
		require.Equal(t, "dark", trigger["themeChanged"]["theme"])

		c := cookieNamed(rec, "theme")
		require.NotNil(t, c)
		require.Equal(t, "dark", c.Value)
		require.False(t, c.HttpOnly)
		require.Positive(t, c.MaxAge)
	})

	t.Run("toggling twice returns to light", func(t *testing.T) {
		t.Parallel()
		req := htmxRequest(http.MethodPost, "/theme", nil)
		req.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
		rec := f.do(req)

		require.Contains(t, rec.Body.String(), `data-theme="light"`)
		require.Equal(t, "light", cookieNamed(rec, "theme").Value)
	})

	t.Run("plain request redirects back", func(t *testing.T) {
		t.Parallel()
		req := plainRequest(http.MethodPost, "/theme", nil)
		req.Header.Set("Referer", "http://example.com/works")
		rec := f.do(req)

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/works", rec.Header().Get("Location"))
		require.Equal(t, "dark", cookieNamed(rec, "theme").Value)
	})
}

func TestSelectLocale(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	t.Run("english switches direction", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodPost, "/lang/en", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `dir="ltr" lang="en"`)
		require.Equal(t, "en", rec.Header().Get("Content-Language"))
		require.Equal(t, "en", cookieNamed(rec, "lang").Value)
		require.Equal(t, "/fa/en", cookieNamed(rec, "googtrans").Value)

		var trigger map[string]map[string]any
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
		require.Equal(t, "en", trigger["localeChanged"]["lang"])
		require.Equal(t, "ltr", trigger["localeChanged"]["dir"])
		require.Equal(t, true, trigger["localeChanged"]["reload"])
	})

	t.Run("persian clears the translation", func(t *testing.T) {
		t.Parallel()
		req := htmxRequest(http.MethodPost, "/lang/fa", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		rec := f.do(req)

		require.Contains(t, rec.Body.String(), `dir="rtl" lang="fa"`)
		c := cookieNamed(rec, "googtrans")
		require.NotNil(t, c)
		require.Negative(t, c.MaxAge)
	})

	t.Run("unsupported locale", func(t *testing.T) {
		t.Parallel()
		rec := f.do(plainRequest(http.MethodPost, "/lang/de", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Nil(t, cookieNamed(rec, "lang"))
	})

	t.Run("plain request redirects", func(t *testing.T) {
		t.Parallel()
		rec := f.do(plainRequest(http.MethodPost, "/lang/ar", nil))

		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/", rec.Header().Get("Location"))
		require.Equal(t, "ar", cookieNamed(rec, "lang").Value)
	})
}

func TestWorks(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	t.Run("json is newest first", func(t *testing.T) {
		t.Parallel()
		rec := f.do(plainRequest(http.MethodGet, "/works.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var items []works.Item
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
		ids := make([]int, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		require.Equal(t, []int{4, 3, 2, 1}, ids)
	})

	t.Run("gallery fragment", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodGet, "/works", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `id="gallery"`)
		require.NotContains(t, rec.Body.String(), "<html")
	})

	t.Run("lightbox fragment", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodGet, "/works/2", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "lightbox-open")
		require.Contains(t, rec.Body.String(), "/static/img/works/2.svg")
		require.NotContains(t, rec.Body.String(), "<html")
		require.Equal(t, "/works/2", rec.Header().Get("HX-Push-Url"))
	})

	t.Run("lightbox page", func(t *testing.T) {
		t.Parallel()
		rec := f.do(plainRequest(http.MethodGet, "/works/3", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "<html")
		require.Contains(t, rec.Body.String(), "lightbox-open")
	})

	t.Run("unknown work", func(t *testing.T) {
		t.Parallel()
		for _, target := range []string{"/works/99", "/works/abc", "/works/0"} {
			rec := f.do(plainRequest(http.MethodGet, target, nil))
			require.Equal(t, http.StatusNotFound, rec.Code, target)
		}
	})

	t.Run("unknown work over htmx shows a toast", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodGet, "/works/99", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "#toast", rec.Header().Get("HX-Retarget"))
		require.Contains(t, rec.Body.String(), `class="toast"`)
	})

	t.Run("close", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodGet, "/works/close", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, strings.TrimSpace(rec.Body.String()))
		require.Equal(t, "/#portfolio", rec.Header().Get("HX-Push-Url"))

		rec = f.do(plainRequest(http.MethodGet, "/works/close", nil))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/#portfolio", rec.Header().Get("Location"))
	})
}

func TestOrderInvalid(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	rec := f.do(plainRequest(http.MethodPost, "/order", url.Values{"name": {"  "}}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), `aria-invalid="true"`)
	require.Zero(t, f.form.hits.Load())
	require.Empty(t, f.inbox.emails())
}

func TestPhoneCheck(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)
	t.Cleanup(func() { require.Zero(t, f.form.hits.Load()) })

	t.Run("invalid phone marks the field", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodPost, "/order/phone", url.Values{"phone": {"12-34"}, "name": {"سارا"}}))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		require.Contains(t, body, `id="field-phone" class="field invalid"`)
		require.Contains(t, body, `aria-invalid="true"`)
		require.Contains(t, body, `hx-trigger="blur"`)
		require.Contains(t, body, `value="12-34"`)
		require.NotContains(t, body, `id="order-form"`)
		require.NotContains(t, body, `name="name"`)
	})

	t.Run("empty phone is required", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodPost, "/order/phone", url.Values{"phone": {"   "}}))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `class="field invalid"`)
	})

	t.Run("persian digits pass and come back normalized", func(t *testing.T) {
		t.Parallel()
		rec := f.do(htmxRequest(http.MethodPost, "/order/phone", url.Values{"phone": {"۰۹۱۲ ۳۴۵ ۶۷۸۹"}}))
		require.Equal(t, http.StatusOK, rec.Code)

		body := rec.Body.String()
		require.Contains(t, body, `id="field-phone" class="field"`)
		require.NotContains(t, body, `aria-invalid`)
		require.Contains(t, body, `value="0912 345 6789"`)
	})

	t.Run("plain request goes back to the form", func(t *testing.T) {
		t.Parallel()
		rec := f.do(plainRequest(http.MethodPost, "/order/phone", url.Values{"phone": {"1"}}))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/#order-section", rec.Header().Get("Location"))
	})
}

func TestOrderRejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusInternalServerError)

	rec := f.do(plainRequest(http.MethodPost, "/order", validOrder()))

	require.Equal(t, http.StatusBadGateway, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "notice-error")
	require.Contains(t, body, `class="fallback"`)
	require.Contains(t, body, "entry.1779351425")
	require.Contains(t, body, "usp=pp_url")
	require.Equal(t, int32(1), f.form.hits.Load())
	require.Empty(t, f.inbox.emails())
}

func TestOrderSuccess(t *testing.T) {
	t.Parallel()

	t.Run("plain request redirects with a flash", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, http.StatusOK)

		rec := f.do(plainRequest(http.MethodPost, "/order", validOrder()))
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "/#order-section", rec.Header().Get("Location"))

		flash := cookieNamed(rec, "flash_order")
		require.NotNil(t, flash)

		req := plainRequest(http.MethodGet, "/", nil)
		req.AddCookie(flash)
		rec = f.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "notice-success")
		require.Contains(t, rec.Body.String(), "notice-ref")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, f.srv.Stop(ctx))

		sent := f.inbox.emails()
		require.Len(t, sent, 1)
		require.Equal(t, []string{"owner@example.com"}, sent[0].To)
		require.Contains(t, sent[0].Subject, "سارا")
	})

	t.Run("htmx request renders the notice", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, http.StatusFound)

		rec := f.do(htmxRequest(http.MethodPost, "/order", validOrder()))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `id="order"`)
		require.Contains(t, rec.Body.String(), "notice-success")
		require.NotContains(t, rec.Body.String(), "<html")
		require.Nil(t, cookieNamed(rec, "flash_order"))
	})
}

func TestStaticAndHealth(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	rec := f.do(plainRequest(http.MethodGet, "/static/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(plainRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(plainRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(plainRequest(http.MethodGet, "/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "<html")
}

func TestStartWarmsCatalog(t *testing.T) {
	t.Parallel()
	f := newFixture(t, http.StatusOK)

	require.NoError(t, f.srv.Start(context.Background()))
	items, err := f.srv.Catalog().Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
}

func TestWorksSourceDown(t *testing.T) {
	t.Parallel()

	for name, handler := range map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"malformed json": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id": 1, "title": `))
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			source := httptest.NewServer(handler)
			t.Cleanup(source.Close)
			f := newFixture(t, http.StatusOK, func(cfg *config.Config) {
				cfg.Works.Source = source.URL + "/works.json"
			})

			rec := f.do(plainRequest(http.MethodGet, "/", nil))
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			require.Contains(t, body, `<p class="gallery-message error" role="alert">خطا در بارگذاری نمونه کارها</p>`)
			require.Contains(t, body, `id="order-form"`)
			require.Contains(t, body, `action="/theme"`)

			rec = f.do(htmxRequest(http.MethodGet, "/works", nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Body.String(), "gallery-message error")

			rec = f.do(plainRequest(http.MethodGet, "/works.json", nil))
			require.Equal(t, http.StatusBadGateway, rec.Code)

			rec = f.do(plainRequest(http.MethodGet, "/works/1", nil))
			require.Equal(t, http.StatusBadGateway, rec.Code)

			rec = f.do(plainRequest(http.MethodGet, "/health/ready", nil))
			require.Equal(t, http.StatusServiceUnavailable, rec.Code)

			rec = f.do(htmxRequest(http.MethodPost, "/theme", nil))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Contains(t, rec.Body.String(), `data-theme="dark"`)

			rec = f.do(plainRequest(http.MethodPost, "/order", validOrder()))
			require.Equal(t, http.StatusSeeOther, rec.Code)
		})
	}
}
