package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/models"
)

func (s *Server) handlePlansByDay(w http.ResponseWriter, r *http.Request) {
	dayStr := r.URL.Query().Get("day")
	if dayStr == "" {
		writeError(w, http.StatusBadRequest, "day parameter required")
		return
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day must be an integer 0-6")
		return
	}

	result, err := s.planCache.GetOrFetch(r.Context(), "day:"+dayStr,
		func(ctx context.Context) ([]models.WorkoutPlan, error) {
			return s.plans.ByDay(ctx, day)
		})
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	var plan models.WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.plans.Save(r.Context(), plan); err != nil {
		s.writeOpError(w, err)
		return
	}
	// An edit may have moved the plan between days; drop all cached days.
	s.planCache.Flush()
	writeJSON(w, http.StatusOK, map[string]string{"id": plan.ID})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plan, ok := s.plans.ByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.plans.Delete(r.Context(), id); err != nil {
		s.writeOpError(w, err)
		return
	}
	s.planCache.Flush()
	w.WriteHeader(http.StatusNoContent)
}
