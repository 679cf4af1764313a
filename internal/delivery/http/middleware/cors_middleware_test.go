package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The wrapped handler answers 204, so a 200 on preflight proves the
// middleware short-circuited before it.
func serveCORS(m *CORSMiddleware, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcard(t *testing.T) {
	m := NewCORSMiddleware([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := serveCORS(m, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSEchoesAllowedOrigin(t *testing.T) {
	m := NewCORSMiddleware([]string{"https://referrals.spmc.local"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
	req.Header.Set("Origin", "https://referrals.spmc.local")
	rec := serveCORS(m, req)

	assert.Equal(t, "https://referrals.spmc.local", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Values("Vary"), "Origin")
}

func TestCORSOmitsDisallowedOrigin(t *testing.T) {
	m := NewCORSMiddleware([]string{"https://referrals.spmc.local"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := serveCORS(m, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSEmptyListAllowsAll(t *testing.T) {
	m := NewCORSMiddleware(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/hospitals", nil)
	rec := serveCORS(m, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	m := NewCORSMiddleware([]string{"*"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/referrals", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := serveCORS(m, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, PUT, PATCH, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}
