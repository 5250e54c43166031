package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown templates into HTML wrapped in a layout.
// Parsed templates are cached; rendered output never is.
type Renderer struct {
	fsys   fs.FS
	layout string
	md     goldmark.Markdown

	mu        sync.RWMutex
	templates map[string]*parsedTemplate
	layouts   *template.Template
}

type parsedTemplate struct {
	meta map[string]any
	body *texttemplate.Template
}

// Result is one rendered message.
type Result struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// NewRenderer reads templates from fsys. layout names an html/template file
// in fsys that receives .Content and .Metadata; empty means no layout.
func NewRenderer(fsys fs.FS, layout string) *Renderer {
	return &Renderer{
		fsys:      fsys,
		layout:    layout,
		md:        goldmark.New(goldmark.WithRendererOptions(html.WithHardWraps())),
		templates: make(map[string]*parsedTemplate),
	}
}

// Render executes the named template with data. The executed markdown is
// returned as the plain text part.
func (r *Renderer) Render(name string, data any) (*Result, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := tmpl.body.Execute(&text, data); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &content); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	out := content.String()
	if r.layout != "" {
		layout, err := r.layoutTemplate()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		err = layout.Execute(&buf, map[string]any{
			"Content":  template.HTML(out), //nolint:gosec // goldmark escapes raw HTML by default
			"Metadata": tmpl.meta,
		})
		if err != nil {
			return nil, errors.Join(ErrRenderFailed, err)
		}
		out = buf.String()
	}

	return &Result{Metadata: tmpl.meta, HTML: out, Text: text.String()}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	body, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	cached = &parsedTemplate{meta: parsed.Metadata, body: body}
	r.mu.Lock()
	r.templates[name] = cached
	r.mu.Unlock()
	return cached, nil
}

func (r *Renderer) layoutTemplate() (*template.Template, error) {
	r.mu.RLock()
	cached := r.layouts
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	parsed, err := template.ParseFS(r.fsys, r.layout)
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrTemplateNotFound, r.layout, err)
	}
	r.mu.Lock()
	r.layouts = parsed
	r.mu.Unlock()
	return parsed, nil
}
