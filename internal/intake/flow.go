package intake

import (
	"time"

	"github.com/freshlaundry/website/internal/domain"
	"github.com/freshlaundry/website/internal/pricing"
)

// Values holds the raw field values of a form, keyed by field name.
type Values map[string]string

// FieldRule names a field belonging to a step and whether the step requires
// it to be non-empty.
type FieldRule struct {
	Name     string
	Required bool
}

// Step is one screen of a flow. A step gates forward navigation: "next" is
// only allowed once every required field is filled, every realtime validator
// on the step's fields passes, and the Gate (if any) holds.
type Step struct {
	Title  string
	Fields []FieldRule

	// Gate adds step-specific checks that aren't expressible as per-field
	// rules, such as catalog membership or the pickup date bound. It runs
	// with a fresh wall-clock reading every time validity is evaluated.
	Gate func(fields Values, now time.Time) bool
}

// Flow describes one modal workflow as an ordered list of steps plus the
// estimate calculation performed at submit.
type Flow struct {
	Name  string
	Title string
	Steps []Step

	// Estimate computes the price breakdown from the completed fields.
	// The boolean is false when a selection no longer resolves against the
	// catalog, which cannot happen through the UI.
	Estimate func(fields Values) (pricing.Breakdown, bool)
}

// HasField reports whether any step of the flow declares the named field.
func (f Flow) HasField(name string) bool {
	for _, step := range f.Steps {
		for _, rule := range step.Fields {
			if rule.Name == name {
				return true
			}
		}
	}
	return false
}

// PickupDateValid reports whether raw parses as an ISO date (the format of
// <input type="date">) that is not before the current date. The comparison
// is date-granular in the server's location: today is always a valid pickup
// day, yesterday never is.
func PickupDateValid(raw string, now time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", raw, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !d.Before(today)
}

// QuoteFlow returns the two-step instant-quote workflow: contact info, then
// service details. The estimate uses the frequency-discount model with no
// tax.
func QuoteFlow() Flow {
	return Flow{
		Name:  "quote",
		Title: "Get Your Free Quote",
		Steps: []Step{
			{
				Title: "Contact Information",
				Fields: []FieldRule{
					{Name: "name", Required: true},
					{Name: "email", Required: true},
					{Name: "phone", Required: true},
					{Name: "address"},
					{Name: "preferredContact"},
				},
			},
			{
				Title: "Service Details",
				Fields: []FieldRule{
					{Name: "serviceType", Required: true},
					{Name: "frequency", Required: true},
					{Name: "estimatedWeight"},
					{Name: "specialRequirements"},
				},
				Gate: func(fields Values, _ time.Time) bool {
					_, svcOK := domain.ServiceByID(domain.QuoteServices(), fields["serviceType"])
					_, freqOK := domain.FrequencyByID(domain.Frequencies(), fields["frequency"])
					return svcOK && freqOK
				},
			},
		},
		Estimate: func(fields Values) (pricing.Breakdown, bool) {
			svc, svcOK := domain.ServiceByID(domain.QuoteServices(), fields["serviceType"])
			freq, freqOK := domain.FrequencyByID(domain.Frequencies(), fields["frequency"])
			if !svcOK || !freqOK {
				return pricing.Breakdown{}, false
			}
			return pricing.QuoteEstimate(svc, freq, fields["estimatedWeight"]), true
		},
	}
}

// PickupFlow returns the three-step pickup-scheduling workflow: contact
// info, pickup address, then service and scheduling details. The estimate
// uses the urgency-surcharge model and includes tax.
func PickupFlow() Flow {
	return Flow{
		Name:  "pickup",
		Title: "Schedule Your Pickup",
		Steps: []Step{
			{
				Title: "Contact Information",
				Fields: []FieldRule{
					{Name: "firstName", Required: true},
					{Name: "lastName", Required: true},
					{Name: "email", Required: true},
					{Name: "phone", Required: true},
				},
			},
			{
				Title: "Pickup Address",
				Fields: []FieldRule{
					{Name: "address", Required: true},
					{Name: "city", Required: true},
					{Name: "zipCode", Required: true},
				},
			},
			{
				Title: "Service & Schedule",
				Fields: []FieldRule{
					{Name: "service", Required: true},
					{Name: "urgency", Required: true},
					{Name: "pickupDate", Required: true},
					{Name: "pickupTime", Required: true},
					{Name: "estimatedWeight", Required: true},
					{Name: "specialInstructions"},
				},
				Gate: func(fields Values, now time.Time) bool {
					if _, ok := domain.ServiceByID(domain.PickupServices(), fields["service"]); !ok {
						return false
					}
					if _, ok := domain.UrgencyByID(domain.UrgencyTiers(), fields["urgency"]); !ok {
						return false
					}
					if !domain.ValidTimeSlot(fields["pickupTime"]) {
						return false
					}
					return PickupDateValid(fields["pickupDate"], now)
				},
			},
		},
		Estimate: func(fields Values) (pricing.Breakdown, bool) {
			svc, svcOK := domain.ServiceByID(domain.PickupServices(), fields["service"])
			urg, urgOK := domain.UrgencyByID(domain.UrgencyTiers(), fields["urgency"])
			if !svcOK || !urgOK {
				return pricing.Breakdown{}, false
			}
			return pricing.PickupEstimate(svc, urg, fields["estimatedWeight"]), true
		},
	}
}
