package middleware

import (
	"crypto/subtle"
	"net/http"
)

// MetricsAuthMiddleware guards the Prometheus scrape endpoint with basic
// auth. With no credentials configured the endpoint is left open, which is
// fine on a private network and logged once at startup by the caller.
type MetricsAuthMiddleware struct {
	username []byte
	password []byte
	enabled  bool
}

// NewMetricsAuthMiddleware creates a new metrics auth middleware.
// If both username and password are empty, authentication is disabled.
func NewMetricsAuthMiddleware(username, password string) *MetricsAuthMiddleware {
	return &MetricsAuthMiddleware{
		username: []byte(username),
		password: []byte(password),
		enabled:  username != "" || password != "",
	}
}

// Handler returns middleware that requires basic authentication.
func (m *MetricsAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok {
			m.unauthorized(w)
			return
		}

		// Constant-time comparison, and both checks always run.
		userMatch := subtle.ConstantTimeCompare([]byte(user), m.username) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(pass), m.password) == 1

		if !userMatch || !passMatch {
			m.unauthorized(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *MetricsAuthMiddleware) unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="freshlaundry-metrics"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
