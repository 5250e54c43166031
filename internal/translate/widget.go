// Package translate renders the Google Translate website widget.
//
// The widget is optional: page chrome is translated on the server, and the
// widget only covers content the catalogs do not. When its script fails to
// load nothing else on the page depends on it.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
)

const (
	ScriptURL     = "https://translate.google.com/translate_a/element.js?cb=googleTranslateElementInit"
	ElementID     = "google_translate_element"
	CookieName    = "googtrans"
	initCallback  = "googleTranslateElementInit"
	defaultSource = "fa"
)

// Config configures the widget.
type Config struct {
	Enabled      bool
	PageLanguage string
	Languages    []string
}

// Widget renders the hidden container, the init callback and the loader
// script. A disabled widget renders nothing.
type Widget struct {
	enabled bool
	options initOptions
}

type initOptions struct {
	PageLanguage      string `json:"pageLanguage"`
	IncludedLanguages string `json:"includedLanguages"`
	AutoDisplay       bool   `json:"autoDisplay"`
}

// New creates a Widget. An empty page language means "fa".
func New(cfg Config) *Widget {
	page := cfg.PageLanguage
	if page == "" {
		page = defaultSource
	}
	return &Widget{
		enabled: cfg.Enabled,
		options: initOptions{
			PageLanguage:      page,
			IncludedLanguages: strings.Join(cfg.Languages, ","),
		},
	}
}

// Enabled reports whether the widget renders anything.
func (w *Widget) Enabled() bool { return w != nil && w.enabled }

// Element renders the hidden mount point. hx-preserve keeps the mounted
// widget when htmx swaps the surrounding shell.
func (w *Widget) Element() template.HTML {
	if !w.Enabled() {
		return ""
	}
	return template.HTML(`<div id="` + ElementID + `" hidden hx-preserve="true"></div>`) //nolint:gosec // constant markup
}

// Script renders the init callback and the loader tag.
func (w *Widget) Script() (template.HTML, error) {
	if !w.Enabled() {
		return "", nil
	}
	opts, err := json.Marshal(w.options)
	if err != nil {
		return "", fmt.Errorf("translate: encode options: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<script>function %s(){new google.translate.TranslateElement(", initCallback)
	b.Write(opts[:len(opts)-1])
	fmt.Fprintf(&b, `,"layout":google.translate.TranslateElement.InlineLayout.SIMPLE},%q);}</script>`, ElementID)
	fmt.Fprintf(&b, `<script src="%s" async></script>`, template.HTMLEscapeString(ScriptURL))
	return template.HTML(b.String()), nil //nolint:gosec // options are JSON encoded
}

// Render writes Element followed by Script, so a Widget can be used as a
// view component.
func (w *Widget) Render(_ context.Context, out io.Writer) error {
	script, err := w.Script()
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, string(w.Element())+string(script))
	return err
}
