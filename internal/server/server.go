// Package server exposes the HTTP API: project document CRUD, metered AI
// generation, and the billing webhook.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/intelligence"
	"github.com/mindmapdigital/projectflow/internal/repository"
	"github.com/sirupsen/logrus"
)

// Config holds the secrets and collaborators the API needs.
type Config struct {
	JWTSecret     string
	WebhookSecret string
}

// Server routes API requests to the persistence and generation layers.
type Server struct {
	cfg        Config
	projects   repository.ProjectRepo
	users      repository.UserRepo
	usage      repository.UsageRepo
	uow        db.UnitOfWork
	generation *intelligence.GenerationService
	log        logrus.FieldLogger
	router     chi.Router
}

// New wires the router. All /api routes except the billing webhook require
// a bearer token.
func New(
	cfg Config,
	projects repository.ProjectRepo,
	users repository.UserRepo,
	usage repository.UsageRepo,
	uow db.UnitOfWork,
	generation *intelligence.GenerationService,
	log logrus.FieldLogger,
) *Server {
	s := &Server{
		cfg:        cfg,
		projects:   projects,
		users:      users,
		usage:      usage,
		uow:        uow,
		generation: generation,
		log:        log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/billing/webhook", s.handleBillingWebhook)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/api/projects", s.handleListProjects)
		r.Post("/api/projects", s.handleSaveProject)
		r.Get("/api/projects/{projectID}", s.handleGetProject)
		r.Put("/api/projects/{projectID}", s.handleUpdateProject)
		r.Delete("/api/projects/{projectID}", s.handleDeleteProject)
		r.Post("/api/ai/generate", s.handleGenerate)
		r.Get("/api/ai/usage", s.handleUsage)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
