// Package render executes the site's html/template set and exposes named
// templates as templ components.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
)

// Translator resolves i18n keys for the t template function.
type Translator interface {
	T(lang, key string) string
}

// Engine holds the parsed template set. Reload swaps it atomically, so
// renders in flight keep the set they started with.
type Engine struct {
	mu    sync.RWMutex
	tmpl  *template.Template
	src   fs.FS
	funcs template.FuncMap
}

// New parses every .tmpl file under src.
func New(src fs.FS, tr Translator) (*Engine, error) {
	e := &Engine{src: src, funcs: Funcs(tr)}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Funcs returns the template function map.
func Funcs(tr Translator) template.FuncMap {
	return template.FuncMap{
		"t": func(lang, key string) string {
			if tr == nil {
				return key
			}
			return tr.T(lang, key)
		},
		"now":  time.Now,
		"year": func() int { return time.Now().Year() },
		"attr": func(s string) template.HTMLAttr { return template.HTMLAttr(s) },
		"add":  func(a, b int) int { return a + b },
		"icon": icon,
	}
}

func icon(name string) template.HTML {
	name = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' {
			return r
		}
		return -1
	}, strings.ToLower(name))
	return template.HTML(`<svg class="icon" aria-hidden="true"><use href="/static/img/icons.svg#` + name + `"></use></svg>`)
}

// Reload reparses the template set from its source.
func (e *Engine) Reload() error {
	t, err := parse(e.src, e.funcs)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.tmpl = t
	e.mu.Unlock()
	return nil
}

func parse(src fs.FS, funcs template.FuncMap) (*template.Template, error) {
	var files []string
	if err := fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("render: walk templates: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("render: no templates found")
	}
	t, err := template.New("_root").Funcs(funcs).ParseFS(src, files...)
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	return t, nil
}

// Has reports whether a template called name is defined.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tmpl.Lookup(name) != nil
}

// Execute writes the named template to w.
func (e *Engine) Execute(w io.Writer, name string, data any) error {
	e.mu.RLock()
	t := e.tmpl
	e.mu.RUnlock()
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Component adapts the named template to templ.Component.
func (e *Engine) Component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return e.Execute(w, name, data)
	})
}

// HTML renders c into a string that templates embed verbatim.
func HTML(ctx context.Context, c templ.Component) (template.HTML, error) {
	if c == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
