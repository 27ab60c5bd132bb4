package intake

import (
	"time"

	"github.com/freshlaundry/website/internal/pricing"
)

// Form is the mutable state of one open modal: field values, the validation
// error map, the current step, and the computed estimate once submitted.
//
// A Form belongs to a single visitor session and a single flow; opening the
// quote and pickup modals side by side yields two independent Forms. All
// operations are synchronous and in-memory. Nothing is persisted: closing
// the modal resets the Form to its initial state.
type Form struct {
	Flow   Flow
	Fields Values
	Errors map[string]string
	Step   int // 1-indexed, within [1, TotalSteps]
	Result *pricing.Breakdown
}

// NewForm creates a fresh form for the flow: every field empty, step 1, no
// errors, no result.
func NewForm(flow Flow) *Form {
	f := &Form{Flow: flow}
	f.Reset()
	return f
}

// Reset returns the form to its documented initial state.
func (f *Form) Reset() {
	f.Fields = make(Values)
	f.Errors = make(map[string]string)
	f.Step = 1
	f.Result = nil
}

// TotalSteps returns the number of steps in the flow.
func (f *Form) TotalSteps() int {
	return len(f.Flow.Steps)
}

// CurrentStep returns the definition of the step the visitor is on.
func (f *Form) CurrentStep() Step {
	return f.Flow.Steps[f.Step-1]
}

// OnLastStep reports whether the visitor is on the final step.
func (f *Form) OnLastStep() bool {
	return f.Step == f.TotalSteps()
}

// SetField stores a new value and refreshes the field's validation state.
// The previous error is cleared the instant the value changes; fields with a
// realtime validator get re-checked immediately, everything else is only
// gated on presence at step transitions. Fields the flow doesn't declare are
// ignored, which keeps the error map a subset of the known field set.
func (f *Form) SetField(name, value string) {
	if !f.Flow.HasField(name) {
		return
	}
	f.Fields[name] = value
	delete(f.Errors, name)

	if msg := CheckField(name, value); msg != "" {
		f.Errors[name] = msg
	}
}

// StepValid reports whether the given step's requirements hold: required
// fields are non-empty, realtime validators pass on every present value, and
// the step's gate (if any) holds against the supplied wall-clock time.
func (f *Form) StepValid(step int, now time.Time) bool {
	if step < 1 || step > f.TotalSteps() {
		return false
	}
	def := f.Flow.Steps[step-1]
	for _, rule := range def.Fields {
		value := f.Fields[rule.Name]
		if rule.Required && value == "" {
			return false
		}
		if CheckField(rule.Name, value) != "" {
			return false
		}
	}
	if def.Gate != nil && !def.Gate(f.Fields, now) {
		return false
	}
	return true
}

// Next advances to the following step. It refuses when the current step is
// invalid or already the last, and reports whether the step changed.
func (f *Form) Next(now time.Time) bool {
	if f.OnLastStep() || !f.StepValid(f.Step, now) {
		return false
	}
	f.Step++
	return true
}

// Previous moves back one step. Going backward is always allowed above
// step 1; nothing is re-validated and no values are lost.
func (f *Form) Previous() bool {
	if f.Step <= 1 {
		return false
	}
	f.Step--
	return true
}

// Submit computes the estimate. It is only honored on a valid final step;
// the current step is left unchanged so "modify details" can return straight
// to the filled form. Reports whether a result was produced.
func (f *Form) Submit(now time.Time) bool {
	if !f.OnLastStep() || !f.StepValid(f.Step, now) {
		return false
	}
	result, ok := f.Flow.Estimate(f.Fields)
	if !ok {
		return false
	}
	f.Result = &result
	return true
}

// ClearResult drops the computed estimate, returning the modal to the form
// view with all entered values intact.
func (f *Form) ClearResult() {
	f.Result = nil
}
