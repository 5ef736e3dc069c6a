// Package web exposes the import pipeline over a JSON HTTP API: upload,
// review mapping, inspect errors, commit.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/crewdeck/crewdeck/internal/config"
	"github.com/crewdeck/crewdeck/internal/importer"
	"github.com/crewdeck/crewdeck/internal/roster"
	"github.com/crewdeck/crewdeck/internal/schema"
	mw "github.com/crewdeck/crewdeck/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP front of the import service.
type Server struct {
	imports *importer.Service
	roster  roster.Provider
	schema  *schema.Schema
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

func NewServer(imports *importer.Service, r roster.Provider, s *schema.Schema, cfg *config.Config) *Server {
	srv := &Server{
		imports: imports,
		roster:  r,
		schema:  s,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	srv.setupMiddleware()
	srv.setupRoutes()
	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Post("/imports", s.handleCreateImport)
		r.Route("/imports/{importID}", func(r chi.Router) {
			r.Get("/", s.handleGetImport)
			r.Put("/mapping", s.handleSetMapping)
			r.Get("/errors", s.handleGetErrors)
			r.Post("/commit", s.handleCommit)
			r.Delete("/", s.handleDiscardImport)
		})

		r.Get("/roster", s.handleRosterSearch)
		r.Get("/schema", s.handleGetSchema)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
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

// securityHeaders adds standard hardening headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
