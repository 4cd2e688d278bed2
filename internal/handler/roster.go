package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// instructorRequest is the body for POST /instructors and PUT
// /instructors/{id}. Empty group and date lists are allowed; the seed roster
// starts that way.
type instructorRequest struct {
	Name           string               `json:"name" validate:"required"`
	Groups         []domain.Group       `json:"groups" validate:"dive,oneof=beginners children adults"`
	AvailableDates []openapi_types.Date `json:"availableDates"`
}

func (r instructorRequest) dates() []string {
	out := make([]string, 0, len(r.AvailableDates))
	for _, d := range r.AvailableDates {
		out = append(out, d.Time.Format(domain.DateLayout))
	}
	return out
}

// listInstructors handles GET /instructors.
func (s *Server) listInstructors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.roster.List())
}

// createInstructor handles POST /instructors.
func (s *Server) createInstructor(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inst, err := s.roster.Add(req.Name, req.Groups, req.dates())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

// updateInstructor handles PUT /instructors/{id}.
func (s *Server) updateInstructor(w http.ResponseWriter, r *http.Request) {
	var req instructorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inst, err := s.roster.Update(chi.URLParam(r, "id"), req.Name, req.Groups, req.dates())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

// deleteInstructor handles DELETE /instructors/{id}.
func (s *Server) deleteInstructor(w http.ResponseWriter, r *http.Request) {
	if err := s.roster.Delete(chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
