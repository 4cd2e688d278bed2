// Package handler implements the HTTP handlers for the scheduling API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (roster.go, schedule.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/service"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// validate checks request DTOs against their struct tags. A single instance
// is the documented usage: it caches struct metadata.
var validate = validator.New()

// RosterServicer defines the instructor CRUD operations the handler depends
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer.
type RosterServicer interface {
	List() []domain.Instructor
	Add(name string, groups []domain.Group, availableDates []string) (domain.Instructor, error)
	Update(id, name string, groups []domain.Group, availableDates []string) (domain.Instructor, error)
	Delete(id string) error
}

// ScheduleServicer defines the slot mutation operations.
type ScheduleServicer interface {
	Assign(date string, group domain.Group, instructorID string, confirm bool) (service.MutationResult, error)
	Unassign(date string, group domain.Group) error
	AddAssistant(date string, group domain.Group, instructorID string, confirm bool) (service.MutationResult, error)
	RemoveAssistant(date string, group domain.Group, instructorID string) error
	SetDescription(date string, group domain.Group, description string, feedback *string) error
	SetMerge(date string, tag domain.MergeTag) error
	Swap(sourceDate string, sourceGroup domain.Group, targetDate string, targetGroup domain.Group, confirm bool) (service.MutationResult, error)
	Drop(req service.DropRequest) (service.MutationResult, error)
	CancelDay(date string) error
	RestoreDay(date string) error
	ClearMonth(year int, month time.Month) error
}

// GeneratorServicer runs the auto-generation engine for one month.
type GeneratorServicer interface {
	Generate(year int, month time.Month) service.GenerateResult
}

// StatsServicer computes per-month statistics.
type StatsServicer interface {
	Month(year int, month time.Month) service.MonthStats
}

// SnapshotServicer persists and restores the whole aggregate.
type SnapshotServicer interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) (bool, error)
}

// URLShortener shortens a share URL. Best-effort; the long URL is always a
// valid fallback.
type URLShortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

// Server holds every handler dependency. The state store is a concrete type:
// read-only views for the schedule and share endpoints go straight to it.
type Server struct {
	store     *state.Store
	roster    RosterServicer
	schedule  ScheduleServicer
	generator GeneratorServicer
	stats     StatsServicer
	snapshots SnapshotServicer
	shortener URLShortener

	// shareBaseURL is the public URL share tokens are appended to.
	shareBaseURL string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	store *state.Store,
	roster RosterServicer,
	schedule ScheduleServicer,
	generator GeneratorServicer,
	stats StatsServicer,
	snapshots SnapshotServicer,
	shortener URLShortener,
	shareBaseURL string,
) *Server {
	return &Server{
		store:        store,
		roster:       roster,
		schedule:     schedule,
		generator:    generator,
		stats:        stats,
		snapshots:    snapshots,
		shortener:    shortener,
		shareBaseURL: shareBaseURL,
	}
}

// Routes registers every endpoint on a fresh router. Middleware is applied
// by the caller so tests can mount the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/instructors", func(r chi.Router) {
		r.Get("/", s.listInstructors)
		r.Post("/", s.createInstructor)
		r.Put("/{id}", s.updateInstructor)
		r.Delete("/{id}", s.deleteInstructor)
	})

	r.Route("/schedule", func(r chi.Router) {
		r.Get("/", s.getSchedule)
		r.Post("/assign", s.assign)
		r.Post("/unassign", s.unassign)
		r.Post("/swap", s.swap)
		r.Post("/drop", s.drop)
		r.Post("/assistants", s.addAssistant)
		r.Delete("/assistants", s.removeAssistant)
		r.Put("/description", s.setDescription)
		r.Put("/merge", s.setMerge)
		r.Post("/generate", s.generate)
		r.Post("/clear", s.clearMonth)
	})

	r.Post("/days/cancel", s.cancelDay)
	r.Post("/days/restore", s.restoreDay)

	r.Get("/stats", s.getStats)

	r.Route("/share", func(r chi.Router) {
		r.Post("/", s.createShareLink)
		r.Get("/decode", s.decodeShareLink)
		r.Post("/shorten", s.shortenShareLink)
	})

	r.Post("/state/save", s.saveState)
	r.Post("/state/load", s.loadState)

	return r
}
