package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/pkg/htmx"
)

// galleryURL is where closing the lightbox leaves the visitor.
const galleryURL = "/#portfolio"

// Works serves the gallery, its JSON feed and the lightbox.
type Works struct {
	pages   *Pages
	catalog *works.Catalog
}

func NewWorks(pages *Pages, catalog *works.Catalog) *Works {
	return &Works{pages: pages, catalog: catalog}
}

func (h *Works) Routes(r web.Router) {
	r.GET("/works", h.gallery)
	r.GET("/works.json", h.list)
	r.GET("/works/close", h.close)
	r.GET("/works/{id}", h.open)
}

func (h *Works) gallery(c web.Context) error {
	return c.Render(http.StatusOK, h.pages.Views().Gallery(h.pages.Gallery(c)))
}

func (h *Works) list(c web.Context) error {
	items, err := h.catalog.Load(c.Context())
	if err != nil {
		return web.ErrBadGateway(c.T("portfolio.load_error"), web.WithError(err))
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Works) open(c web.Context) error {
	id, ok := web.ParamInt(c, "id")
	if !ok {
		return web.ErrNotFound(c.T("errors.work_not_found"))
	}

	item, err := h.catalog.Find(c.Context(), id)
	switch {
	case errors.Is(err, works.ErrNotFound):
		return web.ErrNotFound(c.T("errors.work_not_found"), web.WithError(err))
	case err != nil:
		return web.ErrBadGateway(c.T("portfolio.load_error"), web.WithError(err))
	}

	if c.IsHTMX() {
		return c.Render(http.StatusOK, h.pages.Views().Lightbox(item),
			htmx.WithPushURL("/works/"+strconv.Itoa(item.ID)),
		)
	}

	st := site.Reduce(h.pages.State(c), site.OpenLightbox{ID: item.ID})
	page := h.pages.Page(c, st)
	page.Lightbox = &item
	return c.Render(http.StatusOK, h.pages.Views().Page(page))
}

func (h *Works) close(c web.Context) error {
	if c.IsHTMX() {
		return c.Render(http.StatusOK, views.Empty(), htmx.WithPushURL(galleryURL))
	}
	return c.Redirect(http.StatusSeeOther, galleryURL)
}
