package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/meltforce/gymlog/internal/history"
	"github.com/meltforce/gymlog/internal/models"
	"github.com/meltforce/gymlog/internal/plans"
	"github.com/meltforce/gymlog/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeOpError maps core errors onto HTTP statuses: state-machine
// precondition failures are conflicts, validation failures are bad requests,
// everything else is a storage-level failure the caller may retry.
func (s *Server) writeOpError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, session.ErrSessionInProgress),
		errors.Is(err, session.ErrNotPaused):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNotActiveEligible),
		errors.Is(err, plans.ErrInvalidDay),
		errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, history.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.log.Error("operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
