package server

import (
	"encoding/json"
	"net/http"

	"github.com/meltforce/gymlog/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Get(r.Context()))
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var prefs models.UserSettings
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if err := s.settings.Save(r.Context(), prefs); err != nil {
		s.writeOpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}
