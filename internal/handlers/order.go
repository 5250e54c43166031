package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ehsanpg/mazzehabi/internal/order"
	"github.com/ehsanpg/mazzehabi/internal/views"
	"github.com/ehsanpg/mazzehabi/internal/web"
)

// Order handles the order form.
type Order struct {
	pages   *Pages
	service *order.Service
}

func NewOrder(pages *Pages, service *order.Service) *Order {
	return &Order{pages: pages, service: service}
}

func (h *Order) Routes(r web.Router) {
	r.POST("/order", h.submit)
	r.POST(views.PhoneCheckURL, h.checkPhone)
}

// checkPhone re-renders the phone field with the verdict Submit would give.
// Plain requests only reach it without htmx, so they go back to the form.
func (h *Order) checkPhone(c web.Context) error {
	if !c.IsHTMX() {
		return c.Redirect(http.StatusSeeOther, "/#order-section")
	}
	if err := c.Request().ParseForm(); err != nil {
		return web.ErrBadRequest(c.T("errors.bad_request"), web.WithError(err))
	}

	phone, code := h.service.CheckPhone(c.Request().PostForm.Get(string(order.FieldPhone)))
	form := views.OrderForm{Values: order.Submission{Phone: phone}}
	if code != "" {
		form.Errors = order.FieldErrors{order.FieldPhone: code}
	}
	return c.Render(http.StatusOK, h.pages.Views().OrderField(form.Field(order.FieldPhone)))
}

// submit answers htmx requests with the order section only. Plain requests
// get the whole page with 422 or 502 on failure, and a redirect carrying
// the notice in a flash cookie on success.
func (h *Order) submit(c web.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return web.ErrBadRequest(c.T("errors.bad_request"), web.WithError(err))
	}

	res, err := h.service.Submit(c.Context(), order.FromForm(c.Request().PostForm))
	form := views.OrderForm{Values: res.Submission}
	switch {
	case errors.Is(err, order.ErrInvalid):
		form.Errors = res.Errors
		return h.render(c, http.StatusUnprocessableEntity, form)
	case err != nil:
		form.Notice = &views.Notice{Kind: views.NoticeError}
		form.Fallback = res.Fallback
		return h.render(c, http.StatusBadGateway, form)
	}

	notice := views.Notice{Kind: views.NoticeSuccess, Ref: res.Ref}
	if !c.IsHTMX() {
		err := c.SetFlash(flashOrder, notice)
		if err == nil {
			return c.Redirect(http.StatusSeeOther, "/#order-section")
		}
		c.LogWarn("order flash unavailable", slog.Any("error", err))
	}
	return h.render(c, http.StatusOK, views.OrderForm{Notice: &notice})
}

func (h *Order) render(c web.Context, code int, form views.OrderForm) error {
	v := h.pages.Views()
	if c.IsHTMX() {
		return c.Render(code, v.Order(form))
	}
	page := h.pages.Page(c, h.pages.State(c))
	page.Order = form
	return c.Render(code, v.Page(page))
}
