// Package service contains the business logic for the instructor scheduler:
// the constraint validator, the slot mutation operations, the two-pass
// auto-generation engine, and statistics. Services operate on the shared
// state store and never touch the database or HTTP directly.
package service

import (
	"fmt"
	"time"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// ScheduleService implements the single-slot mutation operations: assign,
// unassign, assistants, descriptions, merges, day cancellation, and the
// compound swap and drag-drop flows.
type ScheduleService struct {
	store *state.Store
}

// NewScheduleService constructs a ScheduleService over the shared store.
func NewScheduleService(store *state.Store) *ScheduleService {
	return &ScheduleService{store: store}
}

// MutationResult reports the outcome of a mutation that may carry advisory
// warnings. When warnings exist and the caller did not confirm, the mutation
// is not applied and the warnings are returned for the caller to surface.
type MutationResult struct {
	// Applied is true when the state was actually changed.
	Applied bool `json:"applied"`

	// Warnings lists constraint violations found by the validator, in
	// check order. Never fatal.
	Warnings []string `json:"warnings,omitempty"`

	// ChoiceRequired is set by Drop when a sidebar drag lands on an
	// occupied slot: the caller must re-submit with an explicit choice
	// (replace the main instructor or join as assistant) instead of the
	// slot being silently overwritten.
	ChoiceRequired bool `json:"choiceRequired,omitempty"`
}

// Assign sets the slot's main instructor, replacing any prior one while
// preserving existing assistants and description. An empty instructorID
// clears the slot like Unassign. Unknown ids return domain.ErrNotFound.
// Warnings block the mutation unless confirm is set.
func (s *ScheduleService) Assign(date string, group domain.Group, instructorID string, confirm bool) (MutationResult, error) {
	var res MutationResult
	err := s.store.Update(func(st *domain.State) error {
		if instructorID == "" {
			unassignSilent(st, date, group)
			res.Applied = true
			return nil
		}
		inst := st.InstructorByID(instructorID)
		if inst == nil {
			return fmt.Errorf("service.ScheduleService.Assign: instructor %s: %w", instructorID, domain.ErrNotFound)
		}
		res.Warnings = ValidateAssignment(st, *inst, date, group, RoleMain)
		if len(res.Warnings) > 0 && !confirm {
			return nil
		}
		assignSilent(st, date, group, instructorID)
		res.Applied = true
		return nil
	})
	if err == nil && res.Applied {
		s.store.Notify()
	}
	return res, err
}

// Unassign clears the slot's main instructor. Assistants are deliberately
// preserved — an unassigned slot may still carry assistant coverage.
// Clearing a slot that does not exist is a safe no-op.
func (s *ScheduleService) Unassign(date string, group domain.Group) error {
	err := s.store.Update(func(st *domain.State) error {
		unassignSilent(st, date, group)
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// AddAssistant appends the instructor to the slot's assistant list.
// Duplicates and the slot's current main instructor are skipped silently —
// the operation is idempotent, not an error. Warnings block unless confirmed.
func (s *ScheduleService) AddAssistant(date string, group domain.Group, instructorID string, confirm bool) (MutationResult, error) {
	var res MutationResult
	err := s.store.Update(func(st *domain.State) error {
		inst := st.InstructorByID(instructorID)
		if inst == nil {
			return fmt.Errorf("service.ScheduleService.AddAssistant: instructor %s: %w", instructorID, domain.ErrNotFound)
		}
		res.Warnings = ValidateAssignment(st, *inst, date, group, RoleAssistant)
		if len(res.Warnings) > 0 && !confirm {
			return nil
		}
		addAssistantSilent(st, date, group, instructorID)
		res.Applied = true
		return nil
	})
	if err == nil && res.Applied {
		s.store.Notify()
	}
	return res, err
}

// RemoveAssistant removes the instructor from the slot's assistant list.
// Removing an absent assistant is a safe no-op.
func (s *ScheduleService) RemoveAssistant(date string, group domain.Group, instructorID string) error {
	err := s.store.Update(func(st *domain.State) error {
		slot := st.SlotAt(date, group)
		if slot == nil {
			return nil
		}
		kept := slot.Assistants[:0]
		for _, id := range slot.Assistants {
			if id != instructorID {
				kept = append(kept, id)
			}
		}
		slot.Assistants = kept
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// SetDescription sets the slot's free-text description and, when feedback is
// non-nil, its feedback annotation. No cross-validation against assignments.
func (s *ScheduleService) SetDescription(date string, group domain.Group, description string, feedback *string) error {
	err := s.store.Update(func(st *domain.State) error {
		day := st.EnsureDay(date)
		slot := day.Slot(group)
		if slot == nil {
			return fmt.Errorf("service.ScheduleService.SetDescription: %w: unknown group %q", domain.ErrValidation, group)
		}
		slot.Description = description
		if feedback != nil {
			slot.Feedback = *feedback
		}
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// SetMerge sets the day's merge tag. Independent of slot instructor data.
func (s *ScheduleService) SetMerge(date string, tag domain.MergeTag) error {
	err := s.store.Update(func(st *domain.State) error {
		if !tag.Valid() {
			return fmt.Errorf("service.ScheduleService.SetMerge: %w: unknown merge tag %q", domain.ErrValidation, tag)
		}
		st.EnsureDay(date).Merge = tag
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// Swap trades the main instructors of two occupied slots, preserving each
// slot's original assistants and description. Internally it is two silent
// assigns followed by a single change notification, so no intermediate state
// is ever observable to readers (the store lock covers both writes).
func (s *ScheduleService) Swap(sourceDate string, sourceGroup domain.Group, targetDate string, targetGroup domain.Group, confirm bool) (MutationResult, error) {
	var res MutationResult
	err := s.store.Update(func(st *domain.State) error {
		source := st.SlotAt(sourceDate, sourceGroup)
		target := st.SlotAt(targetDate, targetGroup)
		if source == nil || source.MainID == "" || target == nil || target.MainID == "" {
			return fmt.Errorf("service.ScheduleService.Swap: %w: both slots must have a main instructor", domain.ErrValidation)
		}
		x := st.InstructorByID(source.MainID)
		y := st.InstructorByID(target.MainID)
		if x == nil || y == nil {
			return fmt.Errorf("service.ScheduleService.Swap: %w", domain.ErrNotFound)
		}
		if x.ID == y.ID {
			res.Applied = true // trading with yourself changes nothing
			return nil
		}
		res.Warnings = ValidateSwap(st, *x, sourceDate, sourceGroup, *y, targetDate, targetGroup)
		if len(res.Warnings) > 0 && !confirm {
			return nil
		}
		assignSilent(st, sourceDate, sourceGroup, y.ID)
		assignSilent(st, targetDate, targetGroup, x.ID)
		res.Applied = true
		return nil
	})
	if err == nil && res.Applied {
		s.store.Notify()
	}
	return res, err
}

// CancelDay flags the date as cancelled. The day is excluded from
// generation, statistics, and display; existing slot data is left in place.
func (s *ScheduleService) CancelDay(date string) error {
	err := s.store.Update(func(st *domain.State) error {
		st.CancelledDays[date] = true
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// RestoreDay removes the cancelled flag from the date.
func (s *ScheduleService) RestoreDay(date string) error {
	err := s.store.Update(func(st *domain.State) error {
		delete(st.CancelledDays, date)
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// ClearMonth deletes every schedule entry and cancelled-day flag in the
// given month. Other months are untouched.
func (s *ScheduleService) ClearMonth(year int, month time.Month) error {
	err := s.store.Update(func(st *domain.State) error {
		for day := 1; day <= domain.DaysInMonth(year, month); day++ {
			date := domain.FormatDate(year, month, day)
			delete(st.Schedule, date)
			delete(st.CancelledDays, date)
		}
		return nil
	})
	if err == nil {
		s.store.Notify()
	}
	return err
}

// --- silent single-slot primitives ------------------------------------------
// These run inside a store.Update callback and never notify; compound
// operations chain them and notify once at the end.

func assignSilent(st *domain.State, date string, group domain.Group, instructorID string) {
	day := st.EnsureDay(date)
	slot := day.Slot(group)
	if slot == nil {
		return
	}
	slot.MainID = instructorID
	// An assistant promoted to main leaves the assistant list; a slot never
	// lists its own main instructor as assistant.
	if instructorID != "" && slot.HasAssistant(instructorID) {
		kept := slot.Assistants[:0]
		for _, a := range slot.Assistants {
			if a != instructorID {
				kept = append(kept, a)
			}
		}
		slot.Assistants = kept
	}
}

func unassignSilent(st *domain.State, date string, group domain.Group) {
	if slot := st.SlotAt(date, group); slot != nil {
		slot.MainID = ""
	}
}

func addAssistantSilent(st *domain.State, date string, group domain.Group, instructorID string) {
	day := st.EnsureDay(date)
	slot := day.Slot(group)
	if slot == nil || slot.MainID == instructorID || slot.HasAssistant(instructorID) {
		return
	}
	slot.Assistants = append(slot.Assistants, instructorID)
}
