// Package web provides the HTTP server and JSON handlers for the analytics
// application: authentication, CSV preview and confirmation, manual entries,
// template downloads, and the dashboard export.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/bizsight/bizsight/internal/auth"
	"github.com/bizsight/bizsight/internal/config"
	"github.com/bizsight/bizsight/internal/session"
	"github.com/bizsight/bizsight/internal/sim"
	appmw "github.com/bizsight/bizsight/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the analytics application.
type Server struct {
	cfg      *config.Config
	auth     *auth.Service
	sessions *session.Manager
	// uploads receives confirmed CSV batches, saves receives pending
	// manual entries. They run with independent latencies.
	uploads sim.Submitter
	saves   sim.Submitter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.Config, authSvc *auth.Service, sessions *session.Manager, uploads, saves sim.Submitter) *Server {
	s := &Server{
		cfg:      cfg,
		auth:     authSvc,
		sessions: sessions,
		uploads:  uploads,
		saves:    saves,
		router:   chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(appmw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(appmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Public authentication endpoints
	s.router.Post("/api/signup", s.handleSignup)
	s.router.Post("/api/login", s.handleLogin)

	// Everything else requires a login session
	s.router.Route("/api", func(r chi.Router) {
		r.Use(appmw.RequireSession(s.sessions))

		r.Post("/logout", s.handleLogout)
		r.Get("/me", s.handleMe)

		// CSV upload flow
		r.Post("/preview", s.handlePreview)
		r.Get("/files", s.handleListFiles)
		r.Post("/files/{fileID}/confirm", s.handleConfirmUpload)
		r.Delete("/files/{fileID}", s.handleRemoveFile)

		// Manual entry flow
		r.Post("/entries", s.handleAddEntry)
		r.Get("/entries", s.handleListEntries)
		r.Delete("/entries/{index}", s.handleRemoveEntry)
		r.Post("/entries/save", s.handleSaveEntries)

		// Fixtures and export
		r.Get("/template/{kind}", s.handleDownloadTemplate)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/export", s.handleExport)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME type sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Prevent clickjacking
			w.Header().Set("X-Frame-Options", "DENY")

			// Control referrer information
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			if enableCSP {
				w.Header().Set("Content-Security-Policy",
					"default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'")
			}

			next.ServeHTTP(w, r)
		})
	}
}
