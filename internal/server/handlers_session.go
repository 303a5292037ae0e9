package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/meltforce/gymlog/internal/models"
)

const activeSessionKey = "session:active"

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	workout, err := s.activeCache.GetOrFetch(r.Context(), activeSessionKey,
		func(ctx context.Context) (*models.Workout, error) {
			if active, ok := s.sessions.Active(ctx); ok {
				return &active, nil
			}
			return nil, nil
		})
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"workout": workout})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PlanID string `json:"planId"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
	}

	var workout models.Workout
	var err error
	if body.PlanID != "" {
		plan, ok := s.plans.ByID(r.Context(), body.PlanID)
		if !ok {
			writeError(w, http.StatusNotFound, "plan not found")
			return
		}
		workout, err = s.sessions.StartFromPlan(r.Context(), plan.PlannedExercises)
	} else {
		workout, err = s.sessions.Start(r.Context())
	}
	if err != nil {
		s.writeOpError(w, err)
		return
	}

	s.activeCache.Invalidate(activeSessionKey)
	writeJSON(w, http.StatusCreated, workout)
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	workout, err := s.sessions.Pause(r.Context())
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.activeCache.Invalidate(activeSessionKey)
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	workout, err := s.sessions.Resume(r.Context())
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.activeCache.Invalidate(activeSessionKey)
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Stop(r.Context())
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.activeCache.Invalidate(activeSessionKey)
	s.historyCache.Flush()
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

func (s *Server) handleDiscardSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Discard(r.Context()); err != nil {
		s.writeOpError(w, err)
		return
	}
	s.activeCache.Invalidate(activeSessionKey)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateExercises(w http.ResponseWriter, r *http.Request) {
	var exercises []models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercises); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	workout, err := s.sessions.UpdateExercises(r.Context(), exercises)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.activeCache.Invalidate(activeSessionKey)
	writeJSON(w, http.StatusOK, workout)
}
