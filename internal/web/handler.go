package web

// Handler declares routes on a router.
//
//	type WorksHandler struct{ catalog *works.Catalog }
//
//	func (h *WorksHandler) Routes(r web.Router) {
//	    r.GET("/works", h.list)
//	    r.GET("/works/{id}", h.open)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands it to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers.
type ErrorHandler func(Context, error) error
