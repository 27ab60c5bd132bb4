package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testLayout and friends are a deliberately tiny template tree. Handler
// tests care about wiring and state transitions, not markup, so each
// fragment emits just enough text to assert on.
const testLayout = `{{define "base"}}<html data-fidelity="%FID%"><body>{{template "content" .}}</body></html>{{end}}`

const testHomePage = `{{define "content"}}<h1>FreshLaundry %FID%</h1>{{range .Services}}<span>{{.Name}} {{.PriceTag}}</span>{{end}}{{end}}`

const testPartials = `{{define "quote_modal"}}<div id="quote-modal" data-fidelity="%FID%">{{template "quote_step" .}}</div>{{end}}
{{define "quote_step"}}<p>{{.Flow}} step {{.Step}}/{{.TotalSteps}}: {{.StepTitle}}</p>{{range $f, $m := .Errors}}<em data-field="{{$f}}">{{$m}}</em>{{end}}{{end}}
{{define "quote_result"}}<strong id="quote-total">{{money .Result.FinalTotal}}</strong>{{end}}
{{define "pickup_modal"}}<div id="pickup-modal" data-fidelity="%FID%">{{template "pickup_step" .}}</div>{{end}}
{{define "pickup_step"}}<p>{{.Flow}} step {{.Step}}/{{.TotalSteps}}: {{.StepTitle}}</p>{{range $f, $m := .Errors}}<em data-field="{{$f}}">{{$m}}</em>{{end}}{{end}}
{{define "pickup_result"}}<strong id="pickup-total">{{money .Result.FinalTotal}}</strong> tax {{money .Result.Tax}}{{end}}
{{define "field_error"}}{{if .Message}}<span class="error">{{.Message}}</span>{{end}}{{end}}
{{define "contact_form"}}{{if .Sent}}<p>Thanks for reaching out</p>{{else}}{{range $f, $m := .Errors}}<em data-field="{{$f}}">{{$m}}</em>{{end}}{{end}}{{end}}`

// writeTestTemplates lays out the two-fidelity template tree in a temp dir.
func writeTestTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for _, fidelity := range []string{FidelityHifi, FidelityLofi} {
		for _, sub := range []string{
			filepath.Join("layouts"),
			filepath.Join("pages", fidelity),
			filepath.Join("partials", fidelity),
		} {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		}

		stamp := func(s string) string { return strings.ReplaceAll(s, "%FID%", fidelity) }
		require.NoError(t, os.WriteFile(filepath.Join(dir, "layouts", fidelity+".html"), []byte(stamp(testLayout)), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", fidelity, "home.html"), []byte(stamp(testHomePage)), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "partials", fidelity, "modals.html"), []byte(stamp(testPartials)), 0o644))
	}
	return dir
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := NewRenderer(RendererConfig{
		TemplatesDir: writeTestTemplates(t),
		Logger:       testLogger(),
		IsDev:        false,
	})
	require.NoError(t, err)
	return r
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passthrough stands in for the CSRF and rate limit middleware, which have
// their own tests.
func passthrough(next http.Handler) http.Handler { return next }

// testClient drives a mux while carrying cookies across requests, the way a
// browser would during a modal interaction.
type testClient struct {
	t       *testing.T
	mux     *http.ServeMux
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, mux *http.ServeMux) *testClient {
	return &testClient{t: t, mux: mux, cookies: make(map[string]*http.Cookie)}
}

func (c *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	// Every POST surface on the site is htmx-driven, and htmx tags its
	// requests. Plain-post fallbacks build their own requests.
	if method == http.MethodPost {
		req.Header.Set("HX-Request", "true")
	}
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	c.mux.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(c.cookies, cookie.Name)
			continue
		}
		c.cookies[cookie.Name] = cookie
	}
	return rec
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *testClient) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}
