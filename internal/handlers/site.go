package handlers

import (
	"net/http"

	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/translate"
	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/pkg/cookie"
	"github.com/ehsanpg/mazzehabi/pkg/htmx"
	"github.com/ehsanpg/mazzehabi/pkg/i18n"
)

const (
	// flashOrder carries the order notice across the post/redirect/get cycle.
	flashOrder      = "order"
	translateCookie = translate.CookieName
)

// Site serves the page and the theme and language controllers.
type Site struct {
	pages  *Pages
	i18n   *i18n.I18n
	widget *translate.Widget
}

// NewSite creates the Site handler.
func NewSite(pages *Pages, svc *i18n.I18n, widget *translate.Widget) *Site {
	return &Site{pages: pages, i18n: svc, widget: widget}
}

func (h *Site) Routes(r web.Router) {
	r.GET("/", h.home)
	r.POST("/theme", h.toggleTheme)
	r.POST("/lang/{locale}", h.selectLocale)
}

func (h *Site) home(c web.Context) error {
	page := h.pages.Page(c, h.pages.State(c))

	var notice views.Notice
	if err := c.Flash(flashOrder, &notice); err == nil {
		page.Order.Notice = &notice
	}
	return c.Render(http.StatusOK, h.pages.Views().Page(page))
}

func (h *Site) toggleTheme(c web.Context) error {
	st := site.Reduce(h.pages.State(c), site.ToggleTheme{})
	c.SetCookie(site.ThemeCookie, st.Theme.String(), site.ThemeMaxAge, cookie.Readable())

	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, htmx.BackURL(c.Request(), "/"))
	}
	return c.Render(http.StatusOK, h.pages.Views().Shell(h.pages.Page(c, st)),
		htmx.WithTriggerDetail("themeChanged", map[string]string{"theme": st.Theme.String()}),
	)
}

func (h *Site) selectLocale(c web.Context) error {
	locale, ok := site.ParseLocale(c.Param("locale"))
	if !ok {
		return web.ErrBadRequest(c.T("errors.unsupported_locale"), web.WithErrorCode("unsupported_locale"))
	}
	st := site.Reduce(h.pages.State(c), site.SelectLocale{Locale: locale})

	c.SetCookie(site.LocaleCookie, locale.String(), 0)
	if gt := locale.GoogTrans(); gt != "" {
		c.SetCookie(translateCookie, gt, 0, cookie.Readable())
	} else {
		c.DeleteCookie(translateCookie)
	}

	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, htmx.BackURL(c.Request(), "/"))
	}

	c.Set(web.TranslatorKey{}, i18n.NewTranslator(h.i18n, locale.String(), views.Namespace))
	c.SetHeader("Content-Language", locale.String())
	return c.Render(http.StatusOK, h.pages.Views().Shell(h.pages.Page(c, st)),
		htmx.WithTriggerDetail("localeChanged", map[string]any{
			"lang":   locale.String(),
			"dir":    string(st.Dir()),
			"reload": h.widget.Enabled(),
		}),
	)
}
