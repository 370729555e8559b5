package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func securityResponse(t *testing.T, enableHSTS bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := SecurityHeaders(enableHSTS)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	rec := securityResponse(t, false)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.NotEmpty(t, rec.Header().Get("Permissions-Policy"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "frame-ancestors 'none'")
}

func TestHSTSOnlyOverHTTPS(t *testing.T) {
	assert.Empty(t, securityResponse(t, false).Header().Get("Strict-Transport-Security"))

	hsts := securityResponse(t, true).Header().Get("Strict-Transport-Security")
	assert.Contains(t, hsts, "max-age=31536000")
}
