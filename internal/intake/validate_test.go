package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "simple address", email: "john@example.com", want: true},
		{name: "subdomain", email: "john@mail.example.co", want: true},
		{name: "missing at", email: "john.example.com", want: false},
		{name: "missing tld dot", email: "john@example", want: false},
		{name: "embedded space", email: "john doe@example.com", want: false},
		{name: "double at", email: "john@@example.com", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{name: "plain 11 digits", phone: "09123456789", want: true},
		{name: "formatted with dashes", phone: "0912-345-6789", want: true},
		{name: "formatted with spaces", phone: "0912 345 6789", want: true},
		{name: "ten digits", phone: "9123456789", want: false},
		{name: "twelve digits", phone: "091234567890", want: false},
		{name: "wrong prefix", phone: "08123456789", want: false},
		{name: "letters only", phone: "call me", want: false},
		{name: "empty", phone: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePhone(tt.phone))
		})
	}
}

func TestValidateZipCode(t *testing.T) {
	tests := []struct {
		name string
		zip  string
		want bool
	}{
		{name: "four digits", zip: "1234", want: true},
		{name: "digits with letters strip to four", zip: "12a34", want: true},
		{name: "three digits", zip: "123", want: false},
		{name: "five digits", zip: "12345", want: false},
		{name: "no digits", zip: "abcd", want: false},
		{name: "empty", zip: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateZipCode(tt.zip))
		})
	}
}

func TestValidateCity(t *testing.T) {
	tests := []struct {
		name string
		city string
		want bool
	}{
		{name: "simple name", city: "Manila", want: true},
		{name: "two words", city: "Quezon City", want: true},
		{name: "apostrophe and period", city: "St. Anne's", want: true},
		{name: "hyphenated", city: "Winston-Salem", want: true},
		{name: "surrounding whitespace trimmed", city: "  Cebu  ", want: true},
		{name: "contains digit", city: "M1", want: false},
		{name: "single letter", city: "M", want: false},
		{name: "empty", city: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCity(tt.city))
		})
	}
}

func TestCheckField(t *testing.T) {
	t.Run("invalid email carries its message", func(t *testing.T) {
		assert.Equal(t, MsgEmail, CheckField("email", "not-an-email"))
	})

	t.Run("valid value has no message", func(t *testing.T) {
		assert.Empty(t, CheckField("phone", "09123456789"))
	})

	t.Run("empty values are not flagged", func(t *testing.T) {
		assert.Empty(t, CheckField("email", ""))
		assert.Empty(t, CheckField("zipCode", ""))
	})

	t.Run("fields without a validator are never flagged", func(t *testing.T) {
		assert.Empty(t, CheckField("firstName", "x"))
		assert.Empty(t, CheckField("estimatedWeight", "not a number"))
	})
}
