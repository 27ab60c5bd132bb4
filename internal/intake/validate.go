// Package intake implements the multi-step form engine shared by the
// Get Quote and Schedule Pickup modals: field validation, step gating, and
// per-session form state.
//
// Validators are pure predicates over raw strings. They run twice by design:
// once on every field change for inline feedback, and again when the visitor
// submits, so a stale browser state can never sneak past the gate.
package intake

import (
	"regexp"
	"strings"
)

var (
	// Shape of local@domain.tld with no embedded whitespace. Deliberately
	// loose beyond that; the estimate is never emailed anywhere.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	nonDigits = regexp.MustCompile(`\D`)

	// Letters, spaces, hyphens, periods, apostrophes. Applied to the
	// trimmed value.
	cityPattern = regexp.MustCompile(`^[a-zA-Z\s\-.']{2,}$`)
)

// Error messages shown under invalid fields.
const (
	MsgEmail   = "Please enter a valid email address with @"
	MsgPhone   = "Phone number must start with 09 and be exactly 11 digits"
	MsgZipCode = "ZIP code must be exactly 4 digits"
	MsgCity    = "Please enter a valid city name (letters only)"
)

// ValidateEmail reports whether s looks like an email address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidatePhone reports whether s is a valid mobile number: after stripping
// every non-digit character, exactly 11 digits starting with "09".
func ValidatePhone(s string) bool {
	digits := nonDigits.ReplaceAllString(s, "")
	return strings.HasPrefix(digits, "09") && len(digits) == 11
}

// ValidateZipCode reports whether s contains exactly 4 digits once all
// non-digit characters are stripped. Postal codes here are 4 digits.
func ValidateZipCode(s string) bool {
	digits := nonDigits.ReplaceAllString(s, "")
	return len(digits) == 4
}

// ValidateCity reports whether the trimmed value is a plausible city name:
// at least two characters of letters, spaces, and basic punctuation.
func ValidateCity(s string) bool {
	return cityPattern.MatchString(strings.TrimSpace(s))
}

// fieldValidators maps the field names that get realtime validation to their
// predicate and error message. All other fields are gated on presence only.
var fieldValidators = map[string]struct {
	valid   func(string) bool
	message string
}{
	"email":   {ValidateEmail, MsgEmail},
	"phone":   {ValidatePhone, MsgPhone},
	"zipCode": {ValidateZipCode, MsgZipCode},
	"city":    {ValidateCity, MsgCity},
}

// CheckField runs the realtime validator for the named field, if it has one.
// The returned message is empty when the value is acceptable. Empty values
// are acceptable here; required-ness is enforced by step gating, not by the
// validators.
func CheckField(name, value string) string {
	v, ok := fieldValidators[name]
	if !ok || value == "" {
		return ""
	}
	if !v.valid(value) {
		return v.message
	}
	return ""
}
