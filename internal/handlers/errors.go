package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/middlewares"
	"github.com/ehsanpg/mazzehabi/pkg/htmx"
)

// ErrorHandler renders handler errors as a localized page, or as a toast
// for htmx requests. Only an HTTPError's message reaches the visitor.
func ErrorHandler(v *views.Views) web.ErrorHandler {
	return func(c web.Context, err error) error {
		code := http.StatusInternalServerError
		message := ""
		if herr, ok := web.AsHTTPError(err); ok {
			code = herr.Code
			message = herr.Message
		}
		if code >= http.StatusInternalServerError {
			c.LogError("request failed", slog.Int("status", code), slog.Any("error", err))
			if _, ok := middlewares.AsPanicError(err); ok || message == "" {
				message = c.T("errors.internal")
			}
		}
		if message == "" {
			message = http.StatusText(code)
		}

		data := views.ErrorPage{
			State:     stateOf(c),
			Code:      code,
			Message:   message,
			RequestID: middlewares.GetRequestID(c.Context()),
		}
		if c.IsHTMX() {
			return c.Render(code, v.Toast(data),
				htmx.WithRetarget("#toast"),
				htmx.WithReswap(htmx.SwapInnerHTML),
			)
		}
		return c.Render(code, v.ErrorPage(data))
	}
}

// NotFound is the handler for unmatched routes.
func NotFound(c web.Context) error {
	return web.ErrNotFound(c.T("errors.not_found"))
}

// MethodNotAllowed is the handler for routes matched with the wrong method.
func MethodNotAllowed(c web.Context) error {
	return web.NewHTTPError(http.StatusMethodNotAllowed, c.T("errors.method_not_allowed"))
}
