// Package handler contains the HTTP handlers for the FreshLaundry website:
// the marketing pages, the quote and pickup modal workflows, and the
// contact form.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/freshlaundry/website/internal/csrf"
	"github.com/freshlaundry/website/internal/domain"
)

// =============================================================================
// Template Data Types
// =============================================================================

// HomePageData contains data for the landing page.
type HomePageData struct {
	CurrentPath string                 // Current URL path
	Fidelity    string                 // Rendition being served
	CSRFToken   string                 // CSRF token for form protection
	Services    []domain.ServiceOption // Services shown in the pricing section
	Frequencies []domain.FrequencyOption
	Urgencies   []domain.UrgencyOption
	TimeSlots   []string
}

// =============================================================================
// Handler Configuration
// =============================================================================

// HomeHandler serves the landing page.
type HomeHandler struct {
	renderer        *Renderer
	logger          *slog.Logger
	defaultFidelity string
	isSecure        bool
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(renderer *Renderer, logger *slog.Logger, defaultFidelity string, isSecure bool) *HomeHandler {
	return &HomeHandler{
		renderer:        renderer,
		logger:          logger,
		defaultFidelity: defaultFidelity,
		isSecure:        isSecure,
	}
}

// RegisterRoutes registers the landing page route.
//
// Routes:
// - GET / -> Index
func (h *HomeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /{$}", http.HandlerFunc(h.Index))
}

// Index renders the landing page in the visitor's chosen fidelity.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	fidelity := ResolveFidelity(w, r, h.defaultFidelity)
	token := csrf.EnsureToken(w, r, h.isSecure)

	data := HomePageData{
		CurrentPath: r.URL.Path,
		Fidelity:    fidelity,
		CSRFToken:   token,
		Services:    domain.QuoteServices(),
		Frequencies: domain.Frequencies(),
		Urgencies:   domain.UrgencyTiers(),
		TimeSlots:   domain.TimeSlots(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, fidelity, "home", data); err != nil {
		InternalErrorResponse(w, r, h.logger, err)
	}
}
