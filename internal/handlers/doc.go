// Package handlers serves the site's routes on top of internal/web.
//
//	GET  /              page
//	POST /theme         toggle light/dark
//	POST /lang/{locale} select fa, en or ar
//	GET  /works         gallery fragment
//	GET  /works.json    sorted works list
//	GET  /works/{id}    open the lightbox
//	GET  /works/close   close the lightbox
//	POST /order         submit the order form
//	POST /order/phone   check the phone field on blur
//
// Each route answers htmx requests with the fragment it changes and plain
// requests with a full page or a redirect, so the site works without
// JavaScript.
package handlers
