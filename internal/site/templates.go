package site

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"time"
)

//go:embed templates
var templateFS embed.FS

// ErrTemplateNotFound is returned for an unknown page or partial name
var ErrTemplateNotFound = errors.New("template not found")

// Page template names
const (
	PageIndex    = "index.html"
	PageAbout    = "about.html"
	PageFeatures = "features.html"
	PageFeature  = "page.html"
)

// Registry holds the page templates, each parsed together with every partial
type Registry struct {
	pages map[string]*template.Template
}

// NewRegistry parses the embedded templates. now supplies the footer date.
func NewRegistry(now func() time.Time) (*Registry, error) {
	if now == nil {
		now = time.Now
	}
	return newRegistry(templateFS, now)
}

func newRegistry(fsys fs.FS, now func() time.Time) (*Registry, error) {
	partials, err := fs.Glob(fsys, "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list partials: %w", err)
	}
	pageFiles, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	r := &Registry{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, file := range pageFiles {
		name := path.Base(file)
		files := append([]string{file}, partials...)
		t, err := template.New(name).Funcs(funcMap(now)).ParseFS(fsys, files...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Lookup returns the template for a page, or a partial defined in it
func (r *Registry) Lookup(name string) (*template.Template, error) {
	if t, ok := r.pages[name]; ok {
		return t, nil
	}
	// any page carries every partial
	for _, t := range r.pages {
		if p := t.Lookup(name); p != nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
}

// Execute renders the named page or partial into w
func (r *Registry) Execute(w io.Writer, name string, data any) error {
	t, err := r.Lookup(name)
	if err != nil {
		return err
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return nil
}
