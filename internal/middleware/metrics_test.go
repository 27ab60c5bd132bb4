package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// Metrics Auth Middleware Tests
// =============================================================================

func TestMetricsAuthMiddleware_AllowsValidCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("admin", "secret123")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("metrics data"))
	}))

	req := httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("admin", "secret123")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_RejectsMissingAndWrongCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("admin", "secret123")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without credentials, got %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header")
	}

	req = httptest.NewRequest("GET", "/metrics", nil)
	req.SetBasicAuth("admin", "wrong")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with wrong password, got %d", rec.Code)
	}
}

func TestMetricsAuthMiddleware_DisabledWithoutCredentials(t *testing.T) {
	mw := NewMetricsAuthMiddleware("", "")

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected pass-through when auth disabled, got %d", rec.Code)
	}
}
