package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/msaswata15/career-navigation-platform/internal/engine"
	"github.com/msaswata15/career-navigation-platform/internal/types"
)

const defaultSimilarLimit = 5

// similarSkill is one entry of the similar-skills response.
type similarSkill struct {
	Skill           string  `json:"skill"`
	SimilarityScore float64 `json:"similarity_score"`
}

// handleCareerPaths serves the main path discovery endpoint.
func (s *Server) handleCareerPaths(w http.ResponseWriter, r *http.Request) {
	var req types.CareerPathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest, "invalid request field: "+verrs[0].Field())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if cached := s.cache.Get(r.Context(), req); cached != nil {
		s.log.Debug("serving cached response",
			zap.String("current_role", req.CurrentRole))
		writeJSON(w, http.StatusOK, cached)
		return
	}

	resp, err := s.engine.FindCareerPaths(r.Context(), req)
	if err != nil {
		if errors.Is(err, engine.ErrServiceUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "a backing service is unavailable, try again later")
			return
		}
		s.log.Error("career path request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.cache.Set(r.Context(), req, resp)
	s.recordHistory(r, req, resp)

	writeJSON(w, http.StatusOK, resp)
}

// recordHistory persists the query for analytics, best-effort.
func (s *Server) recordHistory(r *http.Request, req types.CareerPathRequest, resp *types.CareerPathResponse) {
	if s.history == nil {
		return
	}
	id, err := s.history.RecordQuery(r.Context(), req)
	if err != nil {
		s.log.Warn("failed to record query history", zap.Error(err))
		return
	}
	if err := s.history.SaveResponse(r.Context(), id, resp); err != nil {
		s.log.Warn("failed to save query response", zap.Error(err))
	}
}

// handleSimilarSkills returns skills semantically close to the given one.
func (s *Server) handleSimilarSkills(w http.ResponseWriter, r *http.Request) {
	skill := r.PathValue("skill")
	if skill == "" {
		writeError(w, http.StatusBadRequest, "skill name is required")
		return
	}
	if s.oracle == nil {
		writeError(w, http.StatusServiceUnavailable, "similarity service is not configured")
		return
	}

	limit := defaultSimilarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	corpus, err := s.graph.AllSkillNames(r.Context())
	if err != nil {
		s.log.Error("failed to list skills", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "graph store is unavailable")
		return
	}

	matches, err := s.oracle.Rank(r.Context(), skill, corpus, limit)
	if err != nil {
		s.log.Error("similar skill lookup failed", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "similarity service is unavailable")
		return
	}

	similar := make([]similarSkill, 0, len(matches))
	for _, m := range matches {
		similar = append(similar, similarSkill{
			Skill:           m.Text,
			SimilarityScore: m.Score,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"similar_skills": similar})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
