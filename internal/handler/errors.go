package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/service"
)

// errorDetail is the machine-readable error body shared by all endpoints.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures are logged,
// not surfaced: the status line has already been written.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps the service layer's sentinel errors onto HTTP
// statuses: ErrNotFound → 404, ErrValidation → 422, anything else → 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", unwrapMessage(err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// writeMutationResult implements the confirm/choice contract. A mutation
// blocked by a required choice or by unconfirmed warnings answers 409 so the
// caller can re-submit; an applied mutation answers 200 with the result
// (including any warnings that were confirmed through).
func writeMutationResult(w http.ResponseWriter, res service.MutationResult) {
	if res.ChoiceRequired || (!res.Applied && len(res.Warnings) > 0) {
		writeJSON(w, http.StatusConflict, res)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// decodeJSON decodes the request body into dst and checks its validate tags.
// On failure it writes the error response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
		return false
	}
	return true
}

// validationMessage flattens validator.ValidationErrors into one message
// naming the first offending field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		if e.Tag() == "required" {
			return fmt.Sprintf("%s is required", e.Field())
		}
		return fmt.Sprintf("%s is invalid", e.Field())
	}
	return err.Error()
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error: the "service.Type.Method: " call-site prefix and a leading
// "validation error: " marker are dropped, e.g.
// "service.RosterService.Add: validation error: name is required"
// → "name is required" and
// "service.RosterService.Delete: instructor x: not found"
// → "instructor x: not found".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if rest, found := strings.CutPrefix(msg, "service."); found {
		if _, after, ok := strings.Cut(rest, ": "); ok {
			msg = after
		}
	}
	if rest, found := strings.CutPrefix(msg, domain.ErrValidation.Error()+": "); found {
		msg = rest
	}
	return msg
}
