package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindmapdigital/projectflow/internal/intelligence"
	"github.com/mindmapdigital/projectflow/internal/llm"
)

type generateRequest struct {
	TextInput string `json:"textInput"`
	Type      string `json:"type"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - Please sign in")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TextInput == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: textInput and type")
		return
	}

	genType := llm.TypeGantt
	if req.Type == "raci" {
		genType = llm.TypeRACI
	}

	result, err := s.generation.Generate(r.Context(), principal.ExternalID, principal.Email, req.TextInput, genType)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	body := map[string]any{
		"data":      result.Raw,
		"remaining": result.Remaining,
	}
	if result.Gantt != nil {
		body["gantt"] = result.Gantt
	}
	if result.RACI != nil {
		body["raci"] = result.RACI
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	var limitErr *intelligence.LimitReachedError
	switch {
	case errors.Is(err, intelligence.ErrSubscriptionRequired):
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":             "Active subscription required. Please subscribe to use AI generation.",
			"needsSubscription": true,
		})
	case errors.As(err, &limitErr):
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error":        limitErr.Error(),
			"limitReached": true,
			"remaining":    0,
		})
	case errors.Is(err, llm.ErrInvalidOutput):
		s.log.WithError(err).Warn("generation produced unusable output")
		writeError(w, http.StatusBadGateway, "AI response could not be parsed")
	default:
		s.log.WithError(err).Error("generation failed")
		writeError(w, http.StatusInternalServerError, "Failed to generate chart")
	}
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized - Please sign in")
		return
	}
	report, err := s.generation.Usage(r.Context(), principal.ExternalID, principal.Email)
	if err != nil {
		s.log.WithError(err).Error("usage check failed")
		writeError(w, http.StatusInternalServerError, "Failed to check AI usage")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
