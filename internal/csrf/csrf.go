// Package csrf provides CSRF protection using the double-submit cookie pattern.
//
// A random token is set in a cookie and mirrored in every form as a hidden
// field; on POST the two must match. Cross-origin attackers can make the
// browser send our cookies but cannot read or set them, so they can never
// supply a matching form value.
package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
)

const (
	// CookieName is the name of the CSRF token cookie.
	CookieName = "csrf_token"

	// FormFieldName is the name of the CSRF token form field.
	FormFieldName = "csrf_token"

	// TokenLength is the number of random bytes for the token (32 bytes = 256 bits).
	TokenLength = 32

	// CookieMaxAge is the lifetime of the CSRF cookie (1 hour). Longer than
	// any realistic modal interaction, short enough to rotate regularly.
	CookieMaxAge = 3600
)

// GenerateToken generates a cryptographically secure random token,
// base64 URL-encoded.
func GenerateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ValidateToken compares the cookie token with the form token using a
// constant-time comparison.
func ValidateToken(cookieToken, formToken string) bool {
	if cookieToken == "" || formToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookieToken), []byte(formToken)) == 1
}

// ValidateRequest validates the CSRF token carried by a request: the
// csrf_token cookie against the csrf_token form field. ParseForm must have
// been called first.
func ValidateRequest(r *http.Request) bool {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return false
	}
	return ValidateToken(cookie.Value, r.FormValue(FormFieldName))
}

// SetCookie sets the CSRF token cookie on the response. The cookie is not
// HttpOnly so client-side code could mirror it into requests if needed; the
// rendered forms normally carry the value as a hidden field.
func SetCookie(w http.ResponseWriter, token string, isSecure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   CookieMaxAge,
		HttpOnly: false,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetTokenFromRequest retrieves the CSRF token from the request cookie.
// Returns empty string if the cookie doesn't exist.
func GetTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// EnsureToken returns the request's existing token, or mints a new one and
// sets the cookie. Handlers call this while rendering any page that carries
// a form.
func EnsureToken(w http.ResponseWriter, r *http.Request, isSecure bool) string {
	if existing := GetTokenFromRequest(r); existing != "" {
		return existing
	}

	token, err := GenerateToken()
	if err != nil {
		// crypto/rand failing means the process is in no state to serve
		// anything; surface it loudly.
		panic("csrf: failed to generate token: " + err.Error())
	}

	SetCookie(w, token, isSecure)
	return token
}
