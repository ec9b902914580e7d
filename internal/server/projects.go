package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/repository"
)

// ensureUser resolves the caller's database record, creating it the first
// time an authenticated identity touches the API.
func (s *Server) ensureUser(ctx context.Context, p Principal) (*domain.User, error) {
	user, err := s.users.GetByExternalID(ctx, p.ExternalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	email := p.Email
	if email == "" {
		email = p.ExternalID + "@user.com"
	}
	now := time.Now().UTC()
	user = &domain.User{
		ID:                 uuid.NewString(),
		ExternalID:         p.ExternalID,
		Email:              email,
		SubscriptionStatus: domain.SubscriptionActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Server) callerUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - Please sign in")
		return nil, false
	}
	user, err := s.ensureUser(r.Context(), principal)
	if err != nil {
		s.log.WithError(err).Error("resolving user record")
		writeError(w, http.StatusInternalServerError, "Failed to resolve user")
		return nil, false
	}
	return user, true
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := s.callerUser(w, r)
	if !ok {
		return
	}
	projects, err := s.projects.ListByUser(r.Context(), user.ID)
	if err != nil {
		s.log.WithError(err).Error("listing projects")
		writeError(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.callerUser(w, r)
	if !ok {
		return
	}
	project, err := s.projects.GetByID(r.Context(), user.ID, chi.URLParam(r, "projectID"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("loading project")
		writeError(w, http.StatusInternalServerError, "Failed to load project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

// handleSaveProject accepts a whole project document and upserts it. A
// document without an id is treated as new.
func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.callerUser(w, r)
	if !ok {
		return
	}
	project, ok := decodeProjectBody(w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	if project.ID == "" {
		project.ID = uuid.NewString()
		project.CreatedAt = now
	}
	project.UpdatedAt = now
	if err := s.projects.Upsert(r.Context(), user.ID, project); err != nil {
		s.log.WithError(err).Error("saving project")
		writeError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.callerUser(w, r)
	if !ok {
		return
	}
	project, ok := decodeProjectBody(w, r)
	if !ok {
		return
	}
	// The path owns the identity; the body cannot move the document.
	project.ID = chi.URLParam(r, "projectID")
	project.UpdatedAt = time.Now().UTC()
	if err := s.projects.Upsert(r.Context(), user.ID, project); err != nil {
		s.log.WithError(err).Error("saving project")
		writeError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	user, ok := s.callerUser(w, r)
	if !ok {
		return
	}
	err := s.projects.Delete(r.Context(), user.ID, chi.URLParam(r, "projectID"))
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("deleting project")
		writeError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func decodeProjectBody(w http.ResponseWriter, r *http.Request) (*domain.Project, bool) {
	var project domain.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid project document")
		return nil, false
	}
	if project.Name == "" {
		writeError(w, http.StatusBadRequest, "Project name is required")
		return nil, false
	}
	return &project, true
}
