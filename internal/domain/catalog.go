// Package domain contains core business types for the FreshLaundry site:
// the service catalog, pricing tiers, pickup time slots, and the error
// taxonomy shared by the handler layer.
package domain

import "fmt"

// =============================================================================
// Pricing Unit
// =============================================================================

// PricingUnit describes how a service's base price is applied.
type PricingUnit string

const (
	// UnitPerPound prices the service by estimated laundry weight.
	UnitPerPound PricingUnit = "per_pound"

	// UnitPerItem prices the service per garment. Item count is estimated
	// from weight at roughly two pounds per item.
	UnitPerItem PricingUnit = "per_item"

	// UnitFlat is a fixed price regardless of weight.
	UnitFlat PricingUnit = "flat"
)

// String returns the string representation of the unit.
func (u PricingUnit) String() string {
	return string(u)
}

// IsValid returns true if the unit is a recognized value.
func (u PricingUnit) IsValid() bool {
	switch u {
	case UnitPerPound, UnitPerItem, UnitFlat:
		return true
	}
	return false
}

// Suffix returns the price-tag suffix shown on service cards ("/lb", "/item").
// Flat-priced services have no suffix.
func (u PricingUnit) Suffix() string {
	switch u {
	case UnitPerPound:
		return "/lb"
	case UnitPerItem:
		return "/item"
	}
	return ""
}

// =============================================================================
// Catalog Options
// =============================================================================

// ServiceOption is one entry in the immutable service catalog.
type ServiceOption struct {
	ID          string
	Name        string
	BasePrice   float64
	Unit        PricingUnit
	Description string
}

// PriceTag renders the badge text for a service card, e.g. "$1.50/lb" or
// "+$10" for flat add-on services.
func (s ServiceOption) PriceTag() string {
	if s.Unit == UnitFlat {
		return fmt.Sprintf("+$%.0f", s.BasePrice)
	}
	return fmt.Sprintf("$%.2f%s", s.BasePrice, s.Unit.Suffix())
}

// FrequencyOption carries a discount fraction applied to the base total when
// the customer commits to a recurring schedule.
type FrequencyOption struct {
	ID       string
	Name     string
	Discount float64 // fraction of the base total, e.g. 0.15 for 15% off
}

// UrgencyOption carries a flat surcharge for faster turnaround.
type UrgencyOption struct {
	ID   string
	Name string
	Fee  float64
}

// =============================================================================
// Catalogs
// =============================================================================

// QuoteServices returns the service catalog for the instant-quote flow.
func QuoteServices() []ServiceOption {
	return []ServiceOption{
		{ID: "wash-fold", Name: "Wash & Fold", BasePrice: 1.50, Unit: UnitPerPound, Description: "Standard laundry service"},
		{ID: "dry-cleaning", Name: "Dry Cleaning", BasePrice: 8.99, Unit: UnitPerItem, Description: "Per item pricing"},
		{ID: "premium", Name: "Premium Care", BasePrice: 2.50, Unit: UnitPerPound, Description: "Delicate fabric handling"},
		{ID: "mixed", Name: "Mixed Services", BasePrice: 2.00, Unit: UnitPerPound, Description: "Combination of services"},
	}
}

// PickupServices returns the service catalog for the pickup-scheduling flow.
func PickupServices() []ServiceOption {
	return []ServiceOption{
		{ID: "wash-fold", Name: "Wash & Fold", BasePrice: 1.50, Unit: UnitPerPound, Description: "Standard laundry service"},
		{ID: "dry-clean", Name: "Dry Cleaning", BasePrice: 8.99, Unit: UnitPerItem, Description: "Professional dry cleaning"},
		{ID: "premium", Name: "Premium Care", BasePrice: 2.50, Unit: UnitPerPound, Description: "Delicate fabric handling"},
		{ID: "express", Name: "Express Service", BasePrice: 10.00, Unit: UnitFlat, Description: "24-hour turnaround"},
	}
}

// Frequencies returns the recurring-schedule options for the quote flow.
func Frequencies() []FrequencyOption {
	return []FrequencyOption{
		{ID: "weekly", Name: "Weekly", Discount: 0.15},
		{ID: "bi-weekly", Name: "Bi-Weekly", Discount: 0.10},
		{ID: "monthly", Name: "Monthly", Discount: 0.05},
		{ID: "one-time", Name: "One-Time", Discount: 0},
	}
}

// UrgencyTiers returns the turnaround options for the pickup flow.
func UrgencyTiers() []UrgencyOption {
	return []UrgencyOption{
		{ID: "standard", Name: "Standard (2-3 days)", Fee: 0},
		{ID: "express", Name: "Express (24-48 hours)", Fee: 10},
		{ID: "same-day", Name: "Same Day", Fee: 25},
	}
}

// TimeSlots returns the selectable pickup windows.
func TimeSlots() []string {
	return []string{
		"8:00 AM - 10:00 AM",
		"10:00 AM - 12:00 PM",
		"12:00 PM - 2:00 PM",
		"2:00 PM - 4:00 PM",
		"4:00 PM - 6:00 PM",
		"6:00 PM - 8:00 PM",
	}
}

// =============================================================================
// Lookups
// =============================================================================

// ServiceByID finds a service in a catalog. The second return value reports
// whether the id was present.
func ServiceByID(catalog []ServiceOption, id string) (ServiceOption, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceOption{}, false
}

// FrequencyByID finds a frequency option by id.
func FrequencyByID(options []FrequencyOption, id string) (FrequencyOption, bool) {
	for _, f := range options {
		if f.ID == id {
			return f, true
		}
	}
	return FrequencyOption{}, false
}

// UrgencyByID finds an urgency tier by id.
func UrgencyByID(options []UrgencyOption, id string) (UrgencyOption, bool) {
	for _, u := range options {
		if u.ID == id {
			return u, true
		}
	}
	return UrgencyOption{}, false
}

// ValidTimeSlot reports whether the given slot is one of the fixed pickup
// windows.
func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}
