package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// Fidelity identifiers. Every page and partial exists in two renditions
// parsed from parallel template directories; handlers pick one per request.
const (
	FidelityHifi = "hifi"
	FidelityLofi = "lofi"
)

// Renderer manages template parsing and rendering with isolated template
// sets, one per fidelity.
//
// Templates are organized as:
//   - layouts/hifi.html, layouts/lofi.html - base layouts (define "base")
//   - partials/hifi/*.html, partials/lofi/*.html - fragments for htmx swaps
//   - pages/hifi/*.html, pages/lofi/*.html - full pages (define "content")
//
// Pages are stored keyed as "hifi/home", "lofi/home" and so on. Partials of
// one fidelity are parsed together into a single set so they can invoke each
// other, e.g. the modal shell template rendering the current step template.
type Renderer struct {
	pages    map[string]*template.Template
	partials map[string]*template.Template
	logger   *slog.Logger
	isDev    bool
	mu       sync.RWMutex

	// For dev mode hot-reload
	templatesDir string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	TemplatesDir string
	Logger       *slog.Logger
	IsDev        bool
}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		pages:        make(map[string]*template.Template),
		partials:     make(map[string]*template.Template),
		logger:       cfg.Logger,
		isDev:        cfg.IsDev,
		templatesDir: cfg.TemplatesDir,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	for _, fidelity := range []string{FidelityHifi, FidelityLofi} {
		if err := r.loadFidelity(fidelity); err != nil {
			return err
		}
	}

	r.logger.Info("templates loaded",
		"pages", len(r.pages),
		"partial_sets", len(r.partials),
	)
	return nil
}

func (r *Renderer) loadFidelity(fidelity string) error {
	templatesDir := r.templatesDir

	// Parse the fidelity's partials into one shared set.
	partialsPattern := filepath.Join(templatesDir, "partials", fidelity, "*.html")
	partialFiles, err := filepath.Glob(partialsPattern)
	if err != nil {
		return fmt.Errorf("failed to glob %s partials: %w", fidelity, err)
	}

	partialSet := template.New(fidelity).Funcs(TemplateFuncs())
	if len(partialFiles) > 0 {
		partialSet, err = partialSet.ParseFiles(partialFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse %s partials: %w", fidelity, err)
		}
	}
	r.partials[fidelity] = partialSet

	// Parse the fidelity's layout, then clone it per page. Partials are
	// parsed into the layout too so pages can invoke them inline.
	layoutPath := filepath.Join(templatesDir, "layouts", fidelity+".html")
	baseTmpl, err := template.New(fidelity).Funcs(TemplateFuncs()).ParseFiles(layoutPath)
	if err != nil {
		return fmt.Errorf("failed to parse %s layout: %w", fidelity, err)
	}

	if len(partialFiles) > 0 {
		baseTmpl, err = baseTmpl.ParseFiles(partialFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse partials into %s layout: %w", fidelity, err)
		}
	}

	pages, err := filepath.Glob(filepath.Join(templatesDir, "pages", fidelity, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to glob %s pages: %w", fidelity, err)
	}

	for _, page := range pages {
		pageTmpl, err := baseTmpl.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone %s template for %s: %w", fidelity, page, err)
		}

		pageTmpl, err = pageTmpl.ParseFiles(page)
		if err != nil {
			return fmt.Errorf("failed to parse page %s: %w", page, err)
		}

		// Store as "hifi/home", "lofi/home", etc.
		pageName := filepath.Base(page)
		pageName = strings.TrimSuffix(pageName, filepath.Ext(pageName))
		r.pages[fidelity+"/"+pageName] = pageTmpl
	}

	return nil
}

// Reload reloads all templates from disk. Useful for development.
func (r *Renderer) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pages = make(map[string]*template.Template)
	r.partials = make(map[string]*template.Template)
	return r.loadTemplates()
}

// Render renders a full page in the given fidelity. The page executes
// through the fidelity's base layout.
func (r *Renderer) Render(w io.Writer, fidelity, page string, data interface{}) error {
	// In dev mode, reload templates on each request
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.pages[fidelity+"/"+page]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("page template %q not found", fidelity+"/"+page)
	}

	// Buffer so a mid-render failure never leaves a half-written response.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("failed to render page %q: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// RenderPartial renders a standalone fragment in the given fidelity, for
// htmx swap responses.
func (r *Renderer) RenderPartial(w io.Writer, fidelity, name string, data interface{}) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	set, ok := r.partials[fidelity]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("no partial set for fidelity %q", fidelity)
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render partial %q: %w", name, err)
	}

	_, err := buf.WriteTo(w)
	return err
}
