package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// RosterService implements instructor CRUD. Deletion cascades through the
// whole schedule so no dangling ids survive.
type RosterService struct {
	store *state.Store
}

// NewRosterService constructs a RosterService over the shared store.
func NewRosterService(store *state.Store) *RosterService {
	return &RosterService{store: store}
}

// List returns a copy of the roster in stored order.
func (s *RosterService) List() []domain.Instructor {
	var out []domain.Instructor
	s.store.View(func(st *domain.State) {
		out = make([]domain.Instructor, len(st.Instructors))
		copy(out, st.Instructors)
	})
	return out
}

// Add creates an instructor with a generated id and appends it to the
// roster. Returns domain.ErrValidation for an empty name, an unknown group,
// or a malformed available date.
func (s *RosterService) Add(name string, groups []domain.Group, availableDates []string) (domain.Instructor, error) {
	if err := validateInstructor(name, groups, availableDates); err != nil {
		return domain.Instructor{}, err
	}
	inst := domain.Instructor{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(name),
		Groups:         normalizeGroups(groups),
		AvailableDates: normalizeDates(availableDates),
	}
	err := s.store.Update(func(st *domain.State) error {
		st.Instructors = append(st.Instructors, inst)
		return nil
	})
	if err != nil {
		return domain.Instructor{}, fmt.Errorf("service.RosterService.Add: %w", err)
	}
	s.store.Notify()
	return inst, nil
}

// Update overwrites the instructor's name, capabilities, and availability.
// Returns domain.ErrNotFound for an unknown id.
func (s *RosterService) Update(id, name string, groups []domain.Group, availableDates []string) (domain.Instructor, error) {
	if err := validateInstructor(name, groups, availableDates); err != nil {
		return domain.Instructor{}, err
	}
	var updated domain.Instructor
	err := s.store.Update(func(st *domain.State) error {
		inst := st.InstructorByID(id)
		if inst == nil {
			return fmt.Errorf("service.RosterService.Update: instructor %s: %w", id, domain.ErrNotFound)
		}
		inst.Name = strings.TrimSpace(name)
		inst.Groups = normalizeGroups(groups)
		inst.AvailableDates = normalizeDates(availableDates)
		updated = *inst
		return nil
	})
	if err != nil {
		return domain.Instructor{}, err
	}
	s.store.Notify()
	return updated, nil
}

// Delete removes the instructor from the roster and cascades through every
// schedule entry in one pass: matching main-instructor references are
// nulled and assistant lists filtered, so no dangling id remains anywhere.
// Seed-roster ids are recorded as permanently removed so the load-time
// reconciliation never resurrects them. Returns domain.ErrNotFound for an
// unknown id.
func (s *RosterService) Delete(id string) error {
	err := s.store.Update(func(st *domain.State) error {
		if st.InstructorByID(id) == nil {
			return fmt.Errorf("service.RosterService.Delete: instructor %s: %w", id, domain.ErrNotFound)
		}

		if strings.HasPrefix(id, "default-") && !contains(st.DeletedDefaultIDs, id) {
			st.DeletedDefaultIDs = append(st.DeletedDefaultIDs, id)
		}

		kept := st.Instructors[:0]
		for _, inst := range st.Instructors {
			if inst.ID != id {
				kept = append(kept, inst)
			}
		}
		st.Instructors = kept

		for _, day := range st.Schedule {
			for _, g := range domain.Groups() {
				slot := day.Slot(g)
				if slot.MainID == id {
					slot.MainID = ""
				}
				if slot.HasAssistant(id) {
					assistants := slot.Assistants[:0]
					for _, a := range slot.Assistants {
						if a != id {
							assistants = append(assistants, a)
						}
					}
					slot.Assistants = assistants
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.store.Notify()
	return nil
}

// validateInstructor enforces the rules shared by Add and Update:
// non-blank name, known groups, parseable ISO dates. Empty group and date
// lists are allowed — the seed roster starts that way.
func validateInstructor(name string, groups []domain.Group, dates []string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	for _, g := range groups {
		if !g.Valid() {
			return fmt.Errorf("%w: unknown group %q", domain.ErrValidation, g)
		}
	}
	for _, d := range dates {
		if _, err := domain.ParseDate(d); err != nil {
			return fmt.Errorf("%w: invalid date %q", domain.ErrValidation, d)
		}
	}
	return nil
}

// normalizeGroups deduplicates while keeping first-seen order and
// guarantees a non-nil slice.
func normalizeGroups(groups []domain.Group) []domain.Group {
	out := make([]domain.Group, 0, len(groups))
	seen := make(map[domain.Group]bool, len(groups))
	for _, g := range groups {
		if !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}

func normalizeDates(dates []string) []string {
	out := make([]string, 0, len(dates))
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
