package middleware

import (
	"log/slog"
	"net/http"

	"github.com/freshlaundry/website/internal/csrf"
)

// CSRFMiddleware enforces the double-submit cookie pattern on state-changing
// requests. GET/HEAD pass through untouched.
type CSRFMiddleware struct {
	logger *slog.Logger
}

// NewCSRFMiddleware creates a new CSRF middleware.
func NewCSRFMiddleware(logger *slog.Logger) *CSRFMiddleware {
	return &CSRFMiddleware{logger: logger}
}

// RequireToken returns middleware that rejects POST requests whose form
// token doesn't match the cookie token.
func (m *CSRFMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		if !csrf.ValidateRequest(r) {
			m.logger.Warn("csrf token mismatch",
				"path", r.URL.Path,
				"ip", getClientIP(r),
			)
			http.Error(w, "Invalid or missing CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
