package middlewares

import (
	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/web"
)

// Theme loads the theme preference cookie into the request context.
// Unreadable values fall back to light.
func Theme() web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(c web.Context) error {
			raw, _ := c.Cookie(site.ThemeCookie)
			c.Set(site.ThemeKey{}, site.LoadTheme(raw))
			return next(c)
		}
	}
}
