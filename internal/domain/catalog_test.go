package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingUnitIsValid(t *testing.T) {
	tests := []struct {
		name string
		unit PricingUnit
		want bool
	}{
		{name: "per pound", unit: UnitPerPound, want: true},
		{name: "per item", unit: UnitPerItem, want: true},
		{name: "flat", unit: UnitFlat, want: true},
		{name: "unknown", unit: PricingUnit("hourly"), want: false},
		{name: "empty", unit: PricingUnit(""), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.IsValid())
		})
	}
}

func TestServicePriceTag(t *testing.T) {
	tests := []struct {
		name    string
		service ServiceOption
		want    string
	}{
		{
			name:    "per pound service",
			service: ServiceOption{BasePrice: 1.50, Unit: UnitPerPound},
			want:    "$1.50/lb",
		},
		{
			name:    "per item service",
			service: ServiceOption{BasePrice: 8.99, Unit: UnitPerItem},
			want:    "$8.99/item",
		},
		{
			name:    "flat add-on service",
			service: ServiceOption{BasePrice: 10.00, Unit: UnitFlat},
			want:    "+$10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.service.PriceTag())
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	t.Run("known quote service", func(t *testing.T) {
		s, ok := ServiceByID(QuoteServices(), "wash-fold")
		assert.True(t, ok)
		assert.Equal(t, "Wash & Fold", s.Name)
		assert.Equal(t, 1.50, s.BasePrice)
		assert.Equal(t, UnitPerPound, s.Unit)
	})

	t.Run("dry cleaning is priced per item in both catalogs", func(t *testing.T) {
		quote, ok := ServiceByID(QuoteServices(), "dry-cleaning")
		assert.True(t, ok)
		assert.Equal(t, UnitPerItem, quote.Unit)

		pickup, ok := ServiceByID(PickupServices(), "dry-clean")
		assert.True(t, ok)
		assert.Equal(t, UnitPerItem, pickup.Unit)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, ok := ServiceByID(QuoteServices(), "ironing")
		assert.False(t, ok)
	})

	t.Run("frequency discounts", func(t *testing.T) {
		weekly, ok := FrequencyByID(Frequencies(), "weekly")
		assert.True(t, ok)
		assert.Equal(t, 0.15, weekly.Discount)

		oneTime, ok := FrequencyByID(Frequencies(), "one-time")
		assert.True(t, ok)
		assert.Zero(t, oneTime.Discount)
	})

	t.Run("urgency fees", func(t *testing.T) {
		sameDay, ok := UrgencyByID(UrgencyTiers(), "same-day")
		assert.True(t, ok)
		assert.Equal(t, 25.0, sameDay.Fee)

		standard, ok := UrgencyByID(UrgencyTiers(), "standard")
		assert.True(t, ok)
		assert.Zero(t, standard.Fee)
	})
}

func TestValidTimeSlot(t *testing.T) {
	assert.True(t, ValidTimeSlot("8:00 AM - 10:00 AM"))
	assert.True(t, ValidTimeSlot("6:00 PM - 8:00 PM"))
	assert.False(t, ValidTimeSlot("10:00 PM - 12:00 AM"))
	assert.False(t, ValidTimeSlot(""))
}
