package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/models"
)

func (s *Server) handleWorkoutHistory(w http.ResponseWriter, r *http.Request) {
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", history.DefaultPageSize)

	key := fmt.Sprintf("batch:%d:%d", offset, limit)
	batch, err := s.historyCache.GetOrFetch(r.Context(), key,
		func(ctx context.Context) (history.Batch, error) {
			return s.history.FetchBatch(ctx, offset, limit), nil
		})
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

func (s *Server) handleWorkoutCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"count": s.history.Count(r.Context())})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	workout, ok := s.history.ByID(r.Context(), id)
	if !ok {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	updated, err := s.history.Update(r.Context(), id, workout)
	if err != nil {
		s.writeOpError(w, err)
		return
	}
	s.historyCache.Flush()
	writeJSON(w, http.StatusOK, updated)
}
