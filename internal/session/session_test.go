package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlaundry/website/internal/intake"
)

func TestStoreFormLifecycle(t *testing.T) {
	s := NewStore(time.Hour)

	t.Run("first access creates a fresh form", func(t *testing.T) {
		f := s.Form("visitor-1", intake.QuoteFlow())
		require.NotNil(t, f)
		assert.Equal(t, 1, f.Step)
		assert.Empty(t, f.Fields)
	})

	t.Run("second access returns the same form", func(t *testing.T) {
		f := s.Form("visitor-1", intake.QuoteFlow())
		f.SetField("name", "John Doe")

		again := s.Form("visitor-1", intake.QuoteFlow())
		assert.Equal(t, "John Doe", again.Fields["name"])
	})

	t.Run("flows are independent within a session", func(t *testing.T) {
		quote := s.Form("visitor-1", intake.QuoteFlow())
		pickup := s.Form("visitor-1", intake.PickupFlow())

		quote.SetField("email", "a@example.com")
		assert.Empty(t, pickup.Fields["email"])
	})

	t.Run("sessions are independent", func(t *testing.T) {
		other := s.Form("visitor-2", intake.QuoteFlow())
		assert.Empty(t, other.Fields["name"])
	})

	t.Run("drop discards one flow only", func(t *testing.T) {
		s.Form("visitor-1", intake.PickupFlow()).SetField("firstName", "Maria")
		s.Drop("visitor-1", "quote")

		fresh := s.Form("visitor-1", intake.QuoteFlow())
		assert.Empty(t, fresh.Fields)

		pickup := s.Form("visitor-1", intake.PickupFlow())
		assert.Equal(t, "Maria", pickup.Fields["firstName"])
	})

	t.Run("dropping the last flow removes the session", func(t *testing.T) {
		before := s.Len()
		s.Drop("visitor-2", "quote")
		assert.Equal(t, before-1, s.Len())
	})
}

func TestEnsureID(t *testing.T) {
	t.Run("mints and sets a cookie when absent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()

		id := EnsureID(w, r, false)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, CookieName, cookies[0].Name)
		assert.Equal(t, id, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
	})

	t.Run("reuses a valid cookie", func(t *testing.T) {
		existing := uuid.NewString()
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: existing})
		w := httptest.NewRecorder()

		assert.Equal(t, existing, EnsureID(w, r, false))
		assert.Empty(t, w.Result().Cookies(), "no new cookie should be set")
	})

	t.Run("replaces a malformed cookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})
		w := httptest.NewRecorder()

		id := EnsureID(w, r, false)
		assert.NotEqual(t, "not-a-uuid", id)
		require.Len(t, w.Result().Cookies(), 1)
	})
}
