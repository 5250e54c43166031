package views

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/ehsanpg/mazzehabi/internal/site"
	"github.com/ehsanpg/mazzehabi/internal/translate"
	"github.com/ehsanpg/mazzehabi/internal/web"
	"github.com/ehsanpg/mazzehabi/internal/works"
	"github.com/ehsanpg/mazzehabi/pkg/i18n"
)

//go:embed templates/*.html
var templateFS embed.FS

// Namespace is the catalog namespace the templates translate from.
const Namespace = "site"

const defaultFallbackDelay = 2 * time.Second

// Config configures Views.
type Config struct {
	// I18n backs translation when the request carries no translator.
	I18n   *i18n.I18n
	Widget *translate.Widget
	// FallbackDelay is how long the order fallback stays hidden.
	FallbackDelay time.Duration
}

// Views builds the site's components.
type Views struct {
	base   *template.Template
	i18n   *i18n.I18n
	widget *translate.Widget
	delay  string
}

// New parses the embedded templates.
func New(cfg Config) (*Views, error) {
	if cfg.I18n == nil {
		return nil, errors.New("views: i18n is required")
	}
	delay := cfg.FallbackDelay
	if delay <= 0 {
		delay = defaultFallbackDelay
	}

	v := &Views{
		i18n:   cfg.I18n,
		widget: cfg.Widget,
		delay:  fmt.Sprintf("%gs", delay.Seconds()),
	}

	base, err := template.New("views").Funcs(v.funcs(nil)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse templates: %w", err)
	}
	v.base = base
	return v, nil
}

func (v *Views) funcs(tr *i18n.Translator) template.FuncMap {
	return template.FuncMap{
		"t": func(key string) string {
			if tr == nil {
				return key
			}
			return tr.T(key)
		},
		"tr": func(key string, pairs ...string) string {
			if tr == nil {
				return key
			}
			m := i18n.M{}
			for i := 0; i+1 < len(pairs); i += 2 {
				m[pairs[i]] = pairs[i+1]
			}
			return tr.T(key, m)
		},
		"locales": site.Locales,
		"delay":   func() string { return v.delay },
		"widget": func() (template.HTML, error) {
			return v.widget.Script()
		},
		"widgetElement": func() template.HTML {
			return v.widget.Element()
		},
	}
}

func (v *Views) translator(ctx context.Context) *i18n.Translator {
	if tr, ok := ctx.Value(web.TranslatorKey{}).(*i18n.Translator); ok && tr != nil {
		return tr
	}
	return i18n.NewTranslator(v.i18n, "", Namespace)
}

// component executes the named template into a buffer, so a failing
// template never leaves half a page on the wire.
func (v *Views) component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		tmpl, err := v.base.Clone()
		if err != nil {
			return fmt.Errorf("views: clone: %w", err)
		}
		tmpl.Funcs(v.funcs(v.translator(ctx)))

		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
			return fmt.Errorf("views: render %s: %w", name, err)
		}
		_, err = buf.WriteTo(w)
		return err
	})
}

// Page is the full document.
func (v *Views) Page(p Page) templ.Component { return v.component("page", p) }

// Shell is everything inside <body>; theme and locale swaps replace it.
func (v *Views) Shell(p Page) templ.Component { return v.component("shell", p) }

func (v *Views) Gallery(g Gallery) templ.Component { return v.component("gallery", g) }

// Lightbox is the fragment swapped into #lightbox.
func (v *Views) Lightbox(item works.Item) templ.Component { return v.component("lightbox", item) }

func (v *Views) Order(f OrderForm) templ.Component { return v.component("order", f) }

// OrderField is one form control with its inline error, swapped in place
// by the blur check.
func (v *Views) OrderField(f Field) templ.Component { return v.component("order_field", f) }

// Toast is the htmx error fragment swapped into #toast.
func (v *Views) Toast(e ErrorPage) templ.Component { return v.component("toast", e) }

func (v *Views) ErrorPage(e ErrorPage) templ.Component { return v.component("error_page", e) }

// Empty renders nothing.
func Empty() templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return nil })
}
