// Package pricing implements the instant-estimate calculators behind the
// Get Quote and Schedule Pickup flows.
//
// Both calculators are pure functions over the static catalogs in the domain
// package: same inputs always produce the same Breakdown, and nothing here
// touches the network, the clock, or shared state. Intermediate amounts are
// carried unrounded; rounding to cents happens only at display time.
package pricing

import (
	"math"
	"strconv"

	"github.com/freshlaundry/website/internal/domain"
)

const (
	// DefaultWeight is assumed when the visitor leaves the weight blank or
	// enters something that doesn't parse to a positive number.
	DefaultWeight = 10.0

	// HeavyLoadThreshold is the weight above which the heavy-load fee
	// applies. The threshold itself is fee-free.
	HeavyLoadThreshold = 20.0

	// HeavyLoadFee is the flat surcharge for loads over the threshold.
	HeavyLoadFee = 5.0

	// TaxRate is applied to scheduled pickups. Quote estimates are
	// pre-tax by design.
	TaxRate = 0.08

	// poundsPerItem drives the item-count estimate for per-item services.
	poundsPerItem = 2.0
)

// Breakdown is an itemized price estimate. Exactly one of Discount and
// Surcharge is meaningful: quote estimates apply a frequency discount,
// pickup estimates apply an urgency surcharge.
type Breakdown struct {
	// Echoed selections for display
	ServiceName string
	TierName    string  // frequency or urgency label
	Weight      float64 // normalized weight the calculation used
	Items       float64 // estimated item count, per-item services only

	BaseTotal    float64
	Discount     float64
	Surcharge    float64
	HeavyLoadFee float64
	Subtotal     float64 // after discount/surcharge and heavy-load fee
	Tax          float64 // pickup flow only
	FinalTotal   float64
}

// NormalizeWeight parses a raw weight string. Anything that is not a finite
// positive number, including an empty string, falls back to DefaultWeight.
// The stored field value is never mutated; normalization is calculation-only.
func NormalizeWeight(raw string) float64 {
	w, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return DefaultWeight
	}
	return w
}

// baseTotal resolves the pre-adjustment total for a service at the given
// weight. The second return value is the estimated item count, zero for
// services not priced per item.
func baseTotal(service domain.ServiceOption, weight float64) (float64, float64) {
	switch service.Unit {
	case domain.UnitPerItem:
		items := math.Max(1, math.Ceil(weight/poundsPerItem))
		return service.BasePrice * items, items
	case domain.UnitFlat:
		return service.BasePrice, 0
	default:
		return service.BasePrice * weight, 0
	}
}

func heavyLoadFee(weight float64) float64 {
	if weight > HeavyLoadThreshold {
		return HeavyLoadFee
	}
	return 0
}

// QuoteEstimate computes the frequency-discount estimate used by the Get
// Quote flow. No tax is applied.
func QuoteEstimate(service domain.ServiceOption, frequency domain.FrequencyOption, rawWeight string) Breakdown {
	weight := NormalizeWeight(rawWeight)
	base, items := baseTotal(service, weight)

	discount := base * frequency.Discount
	fee := heavyLoadFee(weight)
	subtotal := base - discount

	return Breakdown{
		ServiceName:  service.Name,
		TierName:     frequency.Name,
		Weight:       weight,
		Items:        items,
		BaseTotal:    base,
		Discount:     discount,
		HeavyLoadFee: fee,
		Subtotal:     subtotal,
		FinalTotal:   subtotal + fee,
	}
}

// PickupEstimate computes the urgency-surcharge estimate used by the
// Schedule Pickup flow, including tax.
func PickupEstimate(service domain.ServiceOption, urgency domain.UrgencyOption, rawWeight string) Breakdown {
	weight := NormalizeWeight(rawWeight)
	base, items := baseTotal(service, weight)

	fee := heavyLoadFee(weight)
	subtotal := base + urgency.Fee + fee
	tax := subtotal * TaxRate

	return Breakdown{
		ServiceName:  service.Name,
		TierName:     urgency.Name,
		Weight:       weight,
		Items:        items,
		BaseTotal:    base,
		Surcharge:    urgency.Fee,
		HeavyLoadFee: fee,
		Subtotal:     subtotal,
		Tax:          tax,
		FinalTotal:   subtotal + tax,
	}
}
