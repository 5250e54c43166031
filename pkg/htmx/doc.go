// Package htmx holds the htmx request and response conventions used by the
// site's handlers: detecting htmx requests, setting HX-* response headers
// and redirects that work for both htmx and plain form posts.
package htmx
