package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/share"
)

type shareResponse struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// createShareLink handles POST /share: it encodes the requested month into
// a view-only token and returns the full share URL.
func (s *Server) createShareLink(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var payload share.Payload
	s.store.View(func(st *domain.State) {
		payload = share.BuildPayload(st, req.Year, time.Month(req.Month))
	})

	token, err := share.Encode(payload)
	if err != nil {
		slog.Error("share encoding failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "could not encode share link")
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{
		URL:   s.shareBaseURL + "?" + share.QueryParam + "=" + token,
		Token: token,
	})
}

// decodeShareLink handles GET /share/decode?s=. A bad token answers 400 and
// leaves nothing changed; the live schedule is never touched by decoding.
func (s *Server) decodeShareLink(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(share.QueryParam)
	if token == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "s query parameter is required")
		return
	}
	payload, err := share.Decode(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid share token")
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

type shortenRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type shortenResponse struct {
	ShortURL string `json:"shortUrl,omitempty"`
	// LongURL echoes the original so clients can fall back when the
	// shortening service is down.
	LongURL string `json:"longUrl"`
}

// shortenShareLink handles POST /share/shorten. Shortening is best-effort:
// a failing upstream answers 502 with the long URL still usable.
func (s *Server) shortenShareLink(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	short, err := s.shortener.Shorten(r.Context(), req.URL)
	if err != nil {
		slog.Warn("url shortening failed", "error", err)
		writeJSON(w, http.StatusBadGateway, shortenResponse{LongURL: req.URL})
		return
	}
	writeJSON(w, http.StatusOK, shortenResponse{ShortURL: short, LongURL: req.URL})
}
