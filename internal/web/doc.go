// Package web is the site's HTTP core: an App built on chi with a
// handler signature that returns errors, a request Context with rendering,
// cookie and translation helpers, htmx-aware responses and a runtime with
// graceful shutdown.
//
// Handlers implement [Handler] and declare routes on a [Router]:
//
//	func (h *Site) Routes(r web.Router) {
//	    r.GET("/", h.home)
//	    r.POST("/theme", h.toggleTheme)
//	}
//
// Errors returned from a [HandlerFunc] go to the [ErrorHandler] set with
// [WithErrorHandler]. Return an [HTTPError] to choose the status code.
//
// [App.Run] blocks until SIGINT or SIGTERM, then drains in-flight requests
// and runs shutdown hooks within [ShutdownTimeout].
package web
