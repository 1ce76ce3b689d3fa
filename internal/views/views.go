// Package views renders the HTML pages served next to the upload endpoint.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templateFS embed.FS

// Engine implements fiber.Views over the embedded templates.
type Engine struct {
	markdown goldmark.Markdown

	mu        sync.RWMutex
	templates *template.Template
}

func New() *Engine {
	return &Engine{markdown: goldmark.New()}
}

// Load parses the embedded templates. Fiber calls it once when the app starts.
func (e *Engine) Load() error {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"markdown": e.Markdown}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	e.mu.Lock()
	e.templates = tmpl
	e.mu.Unlock()
	return nil
}

// Render executes the template called name (without extension). Layouts are
// not used.
func (e *Engine) Render(out io.Writer, name string, binding interface{}, _ ...string) error {
	e.mu.RLock()
	tmpl := e.templates
	e.mu.RUnlock()

	if tmpl == nil {
		if err := e.Load(); err != nil {
			return err
		}
		e.mu.RLock()
		tmpl = e.templates
		e.mu.RUnlock()
	}

	t := tmpl.Lookup(name + ".html")
	if t == nil {
		return fmt.Errorf("template %q not found", name)
	}
	return t.Execute(out, binding)
}

// Markdown converts source to HTML. Raw HTML in the source is not passed
// through.
func (e *Engine) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
