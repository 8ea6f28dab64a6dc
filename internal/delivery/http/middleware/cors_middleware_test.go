package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		m := NewCORSMiddleware("*")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/divisions", nil)
		req.Header.Set("Origin", "https://anywhere.example")

		m.Handle(next).ServeHTTP(rec, req)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is echoed back", func(t *testing.T) {
		m := NewCORSMiddleware("https://app.example.com, https://admin.example.com")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/divisions", nil)
		req.Header.Set("Origin", "https://admin.example.com")

		m.Handle(next).ServeHTTP(rec, req)
		assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no CORS headers", func(t *testing.T) {
		m := NewCORSMiddleware("https://app.example.com")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/divisions", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		m.Handle(next).ServeHTTP(rec, req)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code, "the request itself still goes through")
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		m := NewCORSMiddleware("*")
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/login", nil)
		req.Header.Set("Origin", "https://app.example.com")

		called := false
		m.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
	})
}
