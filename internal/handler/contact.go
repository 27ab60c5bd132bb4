package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/freshlaundry/website/internal/csrf"
	"github.com/freshlaundry/website/internal/domain"
	"github.com/freshlaundry/website/internal/intake"
	"github.com/freshlaundry/website/internal/metrics"
	"github.com/freshlaundry/website/internal/session"
)

// contactFields are the form fields the contact section collects. Only
// firstName and email are required; the format validators run on whatever
// else the visitor filled in.
var contactFields = []string{
	"firstName", "lastName", "email", "phone",
	"address", "city", "zipCode", "message",
}

// contactValidated are the fields with format validators.
var contactValidated = []string{"email", "phone", "zipCode", "city"}

// ContactData contains data for the contact form fragment.
type ContactData struct {
	Values    map[string]string
	Errors    map[string]string
	Sent      bool
	CSRFToken string
}

// ContactHandler accepts contact form submissions. Messages are logged and
// counted; there is no delivery backend behind the marketing site.
type ContactHandler struct {
	renderer        *Renderer
	logger          *slog.Logger
	defaultFidelity string
	isSecure        bool
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(renderer *Renderer, logger *slog.Logger, defaultFidelity string, isSecure bool) *ContactHandler {
	return &ContactHandler{
		renderer:        renderer,
		logger:          logger,
		defaultFidelity: defaultFidelity,
		isSecure:        isSecure,
	}
}

// RegisterRoutes registers the contact route.
//
// Routes:
// - POST /contact -> Create
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /contact", protect(http.HandlerFunc(h.Create)))
}

// Create validates and accepts a contact message, then re-renders the
// contact form fragment with either a confirmation or inline errors.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	_ = session.EnsureID(w, r, h.isSecure)

	values := make(map[string]string, len(contactFields))
	for _, field := range contactFields {
		values[field] = strings.TrimSpace(r.FormValue(field))
	}

	errs := make(map[string]string)
	if values["firstName"] == "" {
		errs["firstName"] = "Please enter your first name"
	}
	if values["email"] == "" {
		errs["email"] = intake.MsgEmail
	}
	for _, field := range contactValidated {
		if msg := intake.CheckField(field, values[field]); msg != "" {
			errs[field] = msg
		}
	}

	for field := range errs {
		metrics.FormValidationFailures.WithLabelValues(field).Inc()
	}

	// Plain form posts (no htmx on the page) can't swap a fragment in, so
	// they get the flat validation response or a redirect back to the page.
	if r.Header.Get("HX-Request") == "" {
		if len(errs) > 0 {
			var verr error
			for _, field := range contactFields {
				msg, ok := errs[field]
				if !ok {
					continue
				}
				if verr == nil {
					verr = domain.NewValidationError("contact.create", field, msg)
					continue
				}
				verr = domain.AddFieldError(verr, field, msg)
			}
			ValidationErrorResponse(w, r, h.logger, verr)
			return
		}
		metrics.ContactMessages.Inc()
		h.logger.Info("contact message received",
			"name", strings.TrimSpace(values["firstName"]+" "+values["lastName"]),
			"email", values["email"],
			"length", len(values["message"]),
		)
		http.Redirect(w, r, "/#contact", http.StatusSeeOther)
		return
	}

	token := csrf.EnsureToken(w, r, h.isSecure)
	data := ContactData{
		Values:    values,
		Errors:    errs,
		CSRFToken: token,
	}

	if len(errs) == 0 {
		data.Sent = true
		data.Values = map[string]string{}
		metrics.ContactMessages.Inc()
		h.logger.Info("contact message received",
			"name", strings.TrimSpace(values["firstName"]+" "+values["lastName"]),
			"email", values["email"],
			"length", len(values["message"]),
		)
	}

	fidelity := ResolveFidelity(w, r, h.defaultFidelity)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderPartial(w, fidelity, "contact_form", data); err != nil {
		InternalErrorResponse(w, r, h.logger, err)
	}
}
