package handlers

import (
	"log/slog"

	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/internal/works"
)

// Pages assembles full-page and shell data shared by the handlers.
type Pages struct {
	views   *views.Views
	catalog *works.Catalog
}

// NewPages creates Pages.
func NewPages(v *views.Views, catalog *works.Catalog) *Pages {
	return &Pages{views: v, catalog: catalog}
}

// Views returns the view set.
func (p *Pages) Views() *views.Views { return p.views }

// State is the shell state the request arrived with.
func (p *Pages) State(c web.Context) site.State {
	return stateOf(c)
}

func stateOf(c web.Context) site.State {
	st := site.DefaultState()
	st.Theme = site.ThemeFromContext(c)
	if l, ok := site.ParseLocale(c.Language()); ok {
		st.Locale = l
	}
	return st
}

// Page builds the page data for st. A works load failure is logged and
// shown in place of the gallery.
func (p *Pages) Page(c web.Context, st site.State) views.Page {
	return views.Page{State: st, Gallery: p.Gallery(c)}
}

func (p *Pages) Gallery(c web.Context) views.Gallery {
	items, err := p.catalog.Load(c.Context())
	if err != nil {
		c.LogWarn("works unavailable", slog.Any("error", err))
		return views.Gallery{Failed: true}
	}
	return views.Gallery{Items: items}
}
