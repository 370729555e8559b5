package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"logpanel/auth"
	"logpanel/controllers"
	"logpanel/database"
	gate "logpanel/middleware"
	"logpanel/repositories"
	"logpanel/services"
)

// appConfig carries everything read from the environment at startup
type appConfig struct {
	Port            string
	DBPath          string
	AdminUser       string
	AdminPassHash   string
	SessionSecret   string
	SessionProvider string
	SessionConfig   string
	UseHTTPS        bool
	FailRedirectURL string
	LoginLimit      int
	APILimit        int
	LimitWindow     time.Duration
}

func main() {
	// Load environment variables from .env file, if present
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitializeDatabase(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Initialize repositories, services and controllers
	repos := repositories.NewRepositories(database.GetDB())
	srvs := services.NewServices(repos)

	verifier, err := auth.NewVerifier(cfg.AdminUser, cfg.AdminPassHash)
	if err != nil {
		log.Fatalf("Failed to initialize credential verifier: %v", err)
	}

	csrfGuard := gate.NewCSRFGuard([]byte(cfg.SessionSecret))
	ctrl := controllers.NewControllers(srvs, verifier, csrfGuard, cfg.FailRedirectURL)

	// Set up router
	r, err := setupRouter(cfg, ctrl, csrfGuard)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	fmt.Printf("Logpanel starting on port %s (database: %s)\n", cfg.Port, cfg.DBPath)

	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

// loadConfig reads the environment. The admin credentials and the session
// secret have no defaults: refusing to start beats starting unguarded.
func loadConfig() (appConfig, error) {
	cfg := appConfig{
		Port:            envOr("PORT", "8080"),
		DBPath:          envOr("DB_PATH", "logpanel.db"),
		AdminUser:       os.Getenv("ADMIN_USER"),
		AdminPassHash:   os.Getenv("ADMIN_PASS_HASH"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionProvider: envOr("SESSION_PROVIDER", "file"),
		SessionConfig:   envOr("SESSION_CONFIG", "data/sessions"),
		UseHTTPS:        os.Getenv("USE_HTTPS") == "true",
		FailRedirectURL: envOr("LOGIN_FAIL_REDIRECT", "https://copilot.microsoft.com/"),
		LimitWindow:     15 * time.Minute,
	}

	if cfg.AdminUser == "" {
		return cfg, fmt.Errorf("ADMIN_USER is not set")
	}
	if cfg.AdminPassHash == "" {
		return cfg, fmt.Errorf("ADMIN_PASS_HASH is not set")
	}
	if cfg.SessionSecret == "" {
		return cfg, fmt.Errorf("SESSION_SECRET is not set")
	}

	var err error
	if cfg.LoginLimit, err = envIntOr("LOGIN_RATE_LIMIT", 20); err != nil {
		return cfg, err
	}
	if cfg.APILimit, err = envIntOr("API_RATE_LIMIT", 200); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return n, nil
}

// setupRouter configures the middleware chain and all routes. Every request
// passes rate limiter -> session -> CSRF guard -> admin gate -> handler.
func setupRouter(cfg appConfig, ctrl *controllers.Controllers, csrfGuard *gate.CSRFGuard) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(gate.SecurityHeaders(cfg.UseHTTPS))

	// Session middleware; the file provider keeps sessions across restarts
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       cfg.SessionProvider,
		ProviderConfig: cfg.SessionConfig,
		CookieName:     "logpanel_session",
		Secure:         cfg.UseHTTPS,
		SameSite:       http.SameSiteLaxMode,
		Gclifetime:     3600, // Session lifetime in seconds
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	loginLimiter := gate.NewRateLimiter(cfg.LoginLimit, cfg.LimitWindow)
	apiLimiter := gate.NewRateLimiter(cfg.APILimit, cfg.LimitWindow)

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	// PUBLIC ROUTES (no admin session required, not rate limited)
	r.Group(func(r chi.Router) {
		r.Use(sessionHandler)

		r.Get("/", ctrl.Auth.Entry)
		r.Get("/csrf-token", ctrl.Auth.CSRFToken)
	})

	// LOGIN: the tight limiter rejects before the session store is touched
	r.Group(func(r chi.Router) {
		r.Use(loginLimiter.Handler)
		r.Use(sessionHandler)
		r.Use(csrfGuard.Handler)

		r.Post("/login", ctrl.Auth.Login)
	})

	// ADMIN ROUTES
	r.Group(func(r chi.Router) {
		r.Use(apiLimiter.Handler)
		r.Use(sessionHandler)
		r.Use(csrfGuard.Handler)
		r.Use(gate.RequireAdmin)

		r.Get("/dashboard", ctrl.Auth.Dashboard)
		r.Get("/data", ctrl.Logs.Data)
		r.Post("/save", ctrl.Logs.Save)
		r.Put("/edit/{id}", ctrl.Logs.Edit)
		r.Delete("/delete/{id}", ctrl.Logs.Delete)
		r.Post("/logout", ctrl.Auth.Logout)
	})

	return r, nil
}
