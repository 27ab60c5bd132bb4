package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/freshlaundry/website/internal/csrf"
	"github.com/freshlaundry/website/internal/domain"
	"github.com/freshlaundry/website/internal/intake"
	"github.com/freshlaundry/website/internal/metrics"
	"github.com/freshlaundry/website/internal/pricing"
	"github.com/freshlaundry/website/internal/session"
)

// =============================================================================
// Template Data Types
// =============================================================================

// ModalData contains data for a modal shell, a single step, or a result
// fragment. The same struct feeds both fidelities.
type ModalData struct {
	Flow       string // "quote" or "pickup"
	Title      string
	Step       int
	TotalSteps int
	StepTitle  string
	Values     intake.Values
	Errors     map[string]string
	CanGoBack  bool
	OnLastStep bool
	CSRFToken  string

	// Catalog options for the selects. Quote uses Services and
	// Frequencies; pickup uses Services, Urgencies, TimeSlots and MinDate.
	Services    []domain.ServiceOption
	Frequencies []domain.FrequencyOption
	Urgencies   []domain.UrgencyOption
	TimeSlots   []string
	MinDate     string

	Result *pricing.Breakdown
}

// FieldErrorData contains data for an inline field error fragment.
type FieldErrorData struct {
	Field   string
	Message string
}

// =============================================================================
// Handler Configuration
// =============================================================================

// FlowHandler drives one modal workflow over htmx: it opens the modal,
// applies field edits, moves between steps, submits for an estimate, and
// discards state on close. One instance serves the quote flow and another
// the pickup flow; all behavior differences live in the intake.Flow.
type FlowHandler struct {
	flow            intake.Flow
	renderer        *Renderer
	sessions        *session.Store
	logger          *slog.Logger
	defaultFidelity string
	isSecure        bool
	now             func() time.Time
}

// NewFlowHandler creates a new FlowHandler.
func NewFlowHandler(
	flow intake.Flow,
	renderer *Renderer,
	sessions *session.Store,
	logger *slog.Logger,
	defaultFidelity string,
	isSecure bool,
) *FlowHandler {
	return &FlowHandler{
		flow:            flow,
		renderer:        renderer,
		sessions:        sessions,
		logger:          logger,
		defaultFidelity: defaultFidelity,
		isSecure:        isSecure,
		now:             time.Now,
	}
}

// =============================================================================
// Route Registration
// =============================================================================

// RegisterRoutes registers the modal routes under /{flow}/. The protect
// middleware (CSRF and rate limiting) wraps the state-changing endpoints.
//
// Routes:
// - GET  /{flow}/modal    -> Modal (open, fresh state)
// - POST /{flow}/field    -> Field (realtime validation)
// - POST /{flow}/next     -> Next
// - POST /{flow}/previous -> Previous
// - POST /{flow}/submit   -> Submit
// - POST /{flow}/close    -> Close (discard state)
func (h *FlowHandler) RegisterRoutes(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	prefix := "/" + h.flow.Name
	mux.Handle("GET "+prefix+"/modal", http.HandlerFunc(h.Modal))
	mux.Handle("POST "+prefix+"/field", protect(http.HandlerFunc(h.Field)))
	mux.Handle("POST "+prefix+"/next", protect(http.HandlerFunc(h.Next)))
	mux.Handle("POST "+prefix+"/previous", protect(http.HandlerFunc(h.Previous)))
	mux.Handle("POST "+prefix+"/submit", protect(http.HandlerFunc(h.Submit)))
	mux.Handle("POST "+prefix+"/close", protect(http.HandlerFunc(h.Close)))
}

// =============================================================================
// Handlers
// =============================================================================

// Modal opens the modal with fresh state. Opening always starts over: any
// stale form from an abandoned modal is reset, matching the close semantics.
func (h *FlowHandler) Modal(w http.ResponseWriter, r *http.Request) {
	sid := session.EnsureID(w, r, h.isSecure)
	form := h.sessions.Form(sid, h.flow)
	form.Reset()

	metrics.ModalOpens.WithLabelValues(h.flow.Name).Inc()

	token := csrf.EnsureToken(w, r, h.isSecure)
	h.renderPartial(w, r, h.flow.Name+"_modal", h.modalData(form, token))
}

// Field applies a single field edit and returns the inline error fragment.
// This is the realtime validation path: the browser posts the field on every
// change and swaps the response into the error slot under the input.
func (h *FlowHandler) Field(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("field")
	if !h.flow.HasField(name) {
		ErrorResponse(w, r, h.logger, domain.Invalid("flow.field", "unknown field"))
		return
	}

	sid := session.EnsureID(w, r, h.isSecure)
	form := h.sessions.Form(sid, h.flow)
	form.SetField(name, r.FormValue(name))

	msg := form.Errors[name]
	if msg != "" {
		metrics.FormValidationFailures.WithLabelValues(name).Inc()
	}

	h.renderPartial(w, r, "field_error", FieldErrorData{Field: name, Message: msg})
}

// Next applies the posted step values and advances if the step is valid.
// Either way the response is the step the visitor should now see.
func (h *FlowHandler) Next(w http.ResponseWriter, r *http.Request) {
	sid := session.EnsureID(w, r, h.isSecure)
	form := h.sessions.Form(sid, h.flow)

	h.applyStepValues(r, form)
	form.Next(h.now())

	token := csrf.EnsureToken(w, r, h.isSecure)
	h.renderPartial(w, r, h.flow.Name+"_step", h.modalData(form, token))
}

// Previous applies the posted step values, so edits survive going back,
// then moves to the prior step. No validation gates backward movement.
func (h *FlowHandler) Previous(w http.ResponseWriter, r *http.Request) {
	sid := session.EnsureID(w, r, h.isSecure)
	form := h.sessions.Form(sid, h.flow)

	h.applyStepValues(r, form)
	form.Previous()

	token := csrf.EnsureToken(w, r, h.isSecure)
	h.renderPartial(w, r, h.flow.Name+"_step", h.modalData(form, token))
}

// Submit applies the posted values and, if the final step is valid, computes
// the estimate and renders the result fragment. An invalid submit re-renders
// the current step with its errors; the step never advances either way.
func (h *FlowHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid := session.EnsureID(w, r, h.isSecure)
	form := h.sessions.Form(sid, h.flow)

	h.applyStepValues(r, form)

	token := csrf.EnsureToken(w, r, h.isSecure)
	if !form.Submit(h.now()) {
		h.renderPartial(w, r, h.flow.Name+"_step", h.modalData(form, token))
		return
	}

	metrics.QuotesCalculated.WithLabelValues(h.flow.Name).Inc()
	if h.flow.Name == "pickup" {
		metrics.PickupsScheduled.Inc()
	}

	h.logger.Info("estimate computed",
		"flow", h.flow.Name,
		"service", form.Result.ServiceName,
		"total", form.Result.FinalTotal,
	)

	h.renderPartial(w, r, h.flow.Name+"_result", h.modalData(form, token))
}

// Close discards the modal's state entirely. The empty response lets htmx
// swap the modal out of the page.
func (h *FlowHandler) Close(w http.ResponseWriter, r *http.Request) {
	if sid := session.IDFromRequest(r); sid != "" {
		h.sessions.Drop(sid, h.flow.Name)
	}
	w.WriteHeader(http.StatusOK)
}

// =============================================================================
// Helpers
// =============================================================================

// applyStepValues feeds every posted value for the current step through
// SetField, so validation state stays in sync with what the browser sent.
func (h *FlowHandler) applyStepValues(r *http.Request, form *intake.Form) {
	if r.Form == nil {
		if err := r.ParseForm(); err != nil {
			return
		}
	}
	for _, rule := range form.CurrentStep().Fields {
		if _, ok := r.Form[rule.Name]; ok {
			form.SetField(rule.Name, r.FormValue(rule.Name))
		}
	}
}

func (h *FlowHandler) modalData(form *intake.Form, token string) ModalData {
	data := ModalData{
		Flow:       h.flow.Name,
		Title:      h.flow.Title,
		Step:       form.Step,
		TotalSteps: form.TotalSteps(),
		StepTitle:  form.CurrentStep().Title,
		Values:     form.Fields,
		Errors:     form.Errors,
		CanGoBack:  form.Step > 1,
		OnLastStep: form.OnLastStep(),
		CSRFToken:  token,
		Result:     form.Result,
	}

	switch h.flow.Name {
	case "quote":
		data.Services = domain.QuoteServices()
		data.Frequencies = domain.Frequencies()
	case "pickup":
		data.Services = domain.PickupServices()
		data.Urgencies = domain.UrgencyTiers()
		data.TimeSlots = domain.TimeSlots()
		data.MinDate = h.now().Format("2006-01-02")
	}

	return data
}

func (h *FlowHandler) renderPartial(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	fidelity := ResolveFidelity(w, r, h.defaultFidelity)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.RenderPartial(w, fidelity, name, data); err != nil {
		InternalErrorResponse(w, r, h.logger, err)
	}
}
