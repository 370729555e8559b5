package controllers

import (
	"log"
	"net/http"

	"gitea.com/go-chi/session"

	"logpanel/auth"
	"logpanel/middleware"
	"logpanel/services"
)

// AuthController handles login, logout and CSRF token issuance
type AuthController struct {
	services        *services.Services
	verifier        *auth.Verifier
	csrf            *middleware.CSRFGuard
	failRedirectURL string
}

// NewAuthController creates a new auth controller
func NewAuthController(services *services.Services, verifier *auth.Verifier, csrf *middleware.CSRFGuard, failRedirectURL string) *AuthController {
	return &AuthController{
		services:        services,
		verifier:        verifier,
		csrf:            csrf,
		failRedirectURL: failRedirectURL,
	}
}

// Entry handles GET / — the anonymous entry page. The session middleware has
// already established a session, so the page can fetch its CSRF token.
func (c *AuthController) Entry(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/index.html")
}

// Dashboard handles GET /dashboard for admin sessions
func (c *AuthController) Dashboard(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "static/dashboard.html")
}

// CSRFToken handles GET /csrf-token and returns the token bound to the
// caller's session
func (c *AuthController) CSRFToken(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	writeJSON(w, http.StatusOK, map[string]string{
		"csrfToken": c.csrf.TokenFor(sess.ID()),
	})
}

// Login handles POST /login. The attempt is audited before the outcome
// decides the redirect; a failed attempt mutates nothing and redirects to a
// neutral external destination without disclosing why it failed.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	ok := c.verifier.Verify(username, password)

	if err := c.services.Logs.RecordLoginAttempt(r.Context(), username, ok); err != nil {
		log.Printf("Failed to audit login attempt: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !ok {
		http.Redirect(w, r, c.failRedirectURL, http.StatusSeeOther)
		return
	}

	// Issue a fresh session id before granting admin rights, so a cookie
	// fixed on the victim pre-login never becomes an admin session
	sess, err := session.RegenerateSession(w, r)
	if err != nil {
		log.Printf("Failed to regenerate session: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := sess.Set(middleware.KeyIsAdmin, true); err != nil {
		log.Printf("Failed to set session flag: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}
	if err := sess.Release(); err != nil {
		log.Printf("Failed to persist session: %v", err)
		writeFailure(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout handles POST /logout. The session is destroyed entirely, not just
// stripped of its admin flag.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	if err := sess.Flush(); err != nil {
		log.Printf("Failed to flush session: %v", err)
	}
	if err := sess.Destroy(w, r); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
