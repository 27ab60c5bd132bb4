package handler

import "net/http"

const (
	// FidelityCookieName stores the visitor's chosen rendition.
	FidelityCookieName = "fidelity"

	fidelityQueryParam = "fidelity"
	fidelityCookieAge  = 30 * 24 * 3600
)

func validFidelity(v string) bool {
	return v == FidelityHifi || v == FidelityLofi
}

// ResolveFidelity picks the rendition for a request: an explicit ?fidelity=
// query parameter wins and is persisted in a cookie, then the cookie, then
// the configured default. Unknown values fall through to the next source.
func ResolveFidelity(w http.ResponseWriter, r *http.Request, fallback string) string {
	if q := r.URL.Query().Get(fidelityQueryParam); validFidelity(q) {
		http.SetCookie(w, &http.Cookie{
			Name:     FidelityCookieName,
			Value:    q,
			Path:     "/",
			MaxAge:   fidelityCookieAge,
			SameSite: http.SameSiteLaxMode,
		})
		return q
	}

	if c, err := r.Cookie(FidelityCookieName); err == nil && validFidelity(c.Value) {
		return c.Value
	}

	if validFidelity(fallback) {
		return fallback
	}
	return FidelityHifi
}
