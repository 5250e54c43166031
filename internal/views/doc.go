// Package views renders the site from embedded html/template files.
//
// Every view is a templ.Component, so handlers render them through
// web.Context.Render and RenderPartial like any other component. Templates
// translate with the request's translator through the "t" function.
package views
