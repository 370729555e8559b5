package middleware

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenForIsBoundToSession(t *testing.T) {
	guard := NewCSRFGuard([]byte("secret"))

	token := guard.TokenFor("session-a")

	// Idempotent per session, distinct across sessions and keys
	assert.Equal(t, token, guard.TokenFor("session-a"))
	assert.NotEqual(t, token, guard.TokenFor("session-b"))
	assert.NotEqual(t, token, NewCSRFGuard([]byte("other")).TokenFor("session-a"))
}

func TestValidate(t *testing.T) {
	guard := NewCSRFGuard([]byte("secret"))
	token := guard.TokenFor("session-a")

	assert.True(t, guard.Validate("session-a", token))
	assert.False(t, guard.Validate("session-b", token))
	assert.False(t, guard.Validate("session-a", "forged"))
	assert.False(t, guard.Validate("session-a", ""))
	assert.False(t, guard.Validate("", token))
}

// newSessionTestClient returns a test server wrapping handler setup in the
// session middleware, and a cookie-keeping client
func newSessionTestClient(t *testing.T, setup func(r chi.Router)) (*httptest.Server, *http.Client) {
	t.Helper()

	r := chi.NewRouter()
	sessioner, err := session.Sessioner(session.Options{
		Provider:    "memory",
		CookieName:  "test_session",
		Gclifetime:  3600,
		Maxlifetime: 3600,
	})
	require.NoError(t, err)
	r.Use(sessioner)
	setup(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return ts, &http.Client{Jar: jar}
}

func TestCSRFHandler(t *testing.T) {
	guard := NewCSRFGuard([]byte("secret"))

	ts, client := newSessionTestClient(t, func(r chi.Router) {
		r.Get("/token", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(guard.TokenFor(session.GetSession(r).ID())))
		})
		r.Group(func(r chi.Router) {
			r.Use(guard.Handler)
			r.Get("/read", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			r.Post("/mutate", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})
	})

	// Obtain the session cookie and its token
	resp, err := client.Get(ts.URL + "/token")
	require.NoError(t, err)
	tokenBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	token := string(tokenBytes)
	require.NotEmpty(t, token)

	// Safe methods pass without a token
	resp, err = client.Get(ts.URL + "/read")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Mutations without a token are rejected
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/mutate", nil)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Mutations with a forged token are rejected
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/mutate", nil)
	req.Header.Set(CSRFHeader, "forged")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Mutations with the session's token pass
	req, _ = http.NewRequest(http.MethodPost, ts.URL+"/mutate", nil)
	req.Header.Set(CSRFHeader, token)
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
