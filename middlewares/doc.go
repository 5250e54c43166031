// Package middlewares provides the site's web.Middleware chain:
//
//   - [RequestID] tags each request with an id for logs and responses.
//   - [Recover] converts panics into *PanicError.
//   - [RequestLogger] writes one log record per request.
//   - [Locale] resolves the interface language and stores a translator.
//   - [Theme] loads the theme preference cookie.
//
// Install them outermost first:
//
//	web.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.RequestLogger(),
//	    middlewares.Recover(),
//	    middlewares.Locale(catalog, middlewares.WithLocaleNamespace("site")),
//	    middlewares.Theme(),
//	)
package middlewares
