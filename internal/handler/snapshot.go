package handler

import "net/http"

// saveState handles POST /state/save: it persists the current aggregate.
func (s *Server) saveState(w http.ResponseWriter, r *http.Request) {
	if err := s.snapshots.Save(r.Context()); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type loadResponse struct {
	Loaded bool `json:"loaded"`
}

// loadState handles POST /state/load. Loading is forgiving by contract: a
// missing or unreadable snapshot keeps the in-memory state and reports
// loaded:false instead of failing the request.
func (s *Server) loadState(w http.ResponseWriter, r *http.Request) {
	loaded, err := s.snapshots.Load(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, loadResponse{Loaded: false})
		return
	}
	writeJSON(w, http.StatusOK, loadResponse{Loaded: loaded})
}
