// Package server exposes the estimation engine over HTTP for the
// wizard UI and read-only consumers (reports, chat tooling).
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meridian-eng/wbs-estimator/internal/benchmark"
	"github.com/meridian-eng/wbs-estimator/internal/estimate"
	"github.com/meridian-eng/wbs-estimator/internal/rates"
	"github.com/meridian-eng/wbs-estimator/internal/rfp"
)

// Server wires the engine and repository behind a chi router. It keeps
// the most recent aggregate so read-only consumers (the chat tool's
// project summary) can fetch it without re-supplying inputs.
type Server struct {
	engine *estimate.Engine
	repo   *benchmark.Repository

	mu   sync.RWMutex
	last *estimate.AggregateEstimate
}

// New creates a server.
func New(engine *estimate.Engine, repo *benchmark.Repository) *Server {
	return &Server{engine: engine, repo: repo}
}

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/disciplines", s.handleDisciplines)
		r.Get("/disciplines/{id}/projects", s.handleProjects)
		r.Patch("/disciplines/{id}/projects/{pid}/applicable", s.handleApplicable)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/estimate/aggregate", s.handleAggregate)
		r.Post("/estimate/rfp", s.handleRFP)
		r.Get("/summary", s.handleSummary)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": s.repo.Loaded(),
	})
}

func (s *Server) handleDisciplines(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, benchmark.Disciplines())
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := benchmark.Config(id); !ok {
		writeError(w, http.StatusNotFound, "unknown discipline "+id)
		return
	}
	b := s.repo.GetSync(id)
	if b == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"discipline_id": id,
			"projects":      []any{},
			"loaded":        s.repo.Loaded(),
		})
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleApplicable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pid := chi.URLParam(r, "pid")

	var req struct {
		Applicable *bool `json:"applicable"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.repo.SetApplicable(id, pid, req.Applicable); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DisciplineID string                `json:"discipline_id"`
		Quantity     float64               `json:"quantity"`
		Filter       rates.Filter          `json:"filter"`
		Matrix       *estimate.MatrixInput `json:"matrix,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Matrix != nil {
		res, err := s.engine.EstimateMatrix(*req.Matrix)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	if req.DisciplineID == "" {
		writeError(w, http.StatusBadRequest, "discipline_id is required")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Estimate(req.DisciplineID, req.Quantity, req.Filter))
}

func (s *Server) handleAggregate(w http.ResponseWriter, r *http.Request) {
	var in estimate.AggregateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	agg := s.engine.Aggregate(in)
	s.remember(agg)
	writeJSON(w, http.StatusOK, agg)
}

func (s *Server) handleRFP(w http.ResponseWriter, r *http.Request) {
	var x rfp.Extraction
	if err := json.NewDecoder(r.Body).Decode(&x); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	agg := s.engine.Aggregate(rfp.AggregateInput(x))
	s.remember(agg)
	writeJSON(w, http.StatusOK, agg)
}

// handleSummary returns the most recent aggregate for read-only
// consumers. 404 until an aggregate has been computed this session.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	last := s.last
	s.mu.RUnlock()

	if last == nil {
		writeError(w, http.StatusNotFound, "no estimate computed yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_man_hours": last.TotalManHours,
		"total_lower":     last.TotalLower,
		"total_upper":     last.TotalUpper,
		"disciplines":     last.Disciplines,
		"warnings":        s.repo.Warnings(),
	})
}

func (s *Server) remember(agg estimate.AggregateEstimate) {
	s.mu.Lock()
	s.last = &agg
	s.mu.Unlock()
}
