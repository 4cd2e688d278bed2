package service

import (
	"fmt"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// DropChoice is the caller's resolution when a sidebar drag lands on an
// occupied slot: replace the main instructor, or join as assistant.
type DropChoice string

const (
	ChoiceNone      DropChoice = ""
	ChoiceReplace   DropChoice = "replace"
	ChoiceAssistant DropChoice = "assistant"
)

// DropRequest describes a drag-and-drop gesture. SourceDate/SourceGroup are
// empty when the instructor was dragged from the roster sidebar rather than
// from another calendar slot.
type DropRequest struct {
	InstructorID string
	TargetDate   string
	TargetGroup  domain.Group
	SourceDate   string
	SourceGroup  domain.Group

	// Confirm acknowledges previously returned warnings.
	Confirm bool

	// Choice resolves an occupied-slot sidebar drop. Ignored otherwise.
	Choice DropChoice
}

func (r DropRequest) fromCalendar() bool {
	return r.SourceDate != "" && r.SourceGroup != ""
}

func (r DropRequest) sameSlot() bool {
	return r.SourceDate == r.TargetDate && r.SourceGroup == r.TargetGroup
}

// Drop resolves a drag-and-drop gesture against the current schedule:
//
//   - target slot empty (or held by the dragged instructor): plain move —
//     the source slot, if any, is cleared and the target assigned.
//   - target occupied, dragged from another calendar slot: swap.
//   - target occupied, dragged from the sidebar: the caller must pick
//     replace-or-assistant; until a Choice arrives the result reports
//     ChoiceRequired and nothing is applied.
//
// Warnings follow the same confirm contract as the single-slot operations.
func (s *ScheduleService) Drop(req DropRequest) (MutationResult, error) {
	var res MutationResult
	err := s.store.Update(func(st *domain.State) error {
		inst := st.InstructorByID(req.InstructorID)
		if inst == nil {
			return fmt.Errorf("service.ScheduleService.Drop: instructor %s: %w", req.InstructorID, domain.ErrNotFound)
		}
		if !req.TargetGroup.Valid() {
			return fmt.Errorf("service.ScheduleService.Drop: %w: unknown group %q", domain.ErrValidation, req.TargetGroup)
		}

		target := st.SlotAt(req.TargetDate, req.TargetGroup)
		occupiedBy := ""
		if target != nil {
			occupiedBy = target.MainID
		}

		if occupiedBy != "" && occupiedBy != inst.ID && !req.sameSlot() {
			if req.fromCalendar() {
				return s.dropSwap(st, req, *inst, occupiedBy, &res)
			}
			return s.dropOntoOccupied(st, req, *inst, &res)
		}

		// Empty target, or dropping an instructor back onto their own
		// slot: a plain move.
		res.Warnings = ValidateAssignment(st, *inst, req.TargetDate, req.TargetGroup, RoleMain)
		if len(res.Warnings) > 0 && !req.Confirm {
			return nil
		}
		if req.fromCalendar() {
			unassignSilent(st, req.SourceDate, req.SourceGroup)
		}
		assignSilent(st, req.TargetDate, req.TargetGroup, inst.ID)
		res.Applied = true
		return nil
	})
	if err == nil && res.Applied {
		s.store.Notify()
	}
	return res, err
}

// dropSwap handles a calendar-to-calendar drag onto an occupied slot.
func (s *ScheduleService) dropSwap(st *domain.State, req DropRequest, x domain.Instructor, occupiedBy string, res *MutationResult) error {
	y := st.InstructorByID(occupiedBy)
	if y == nil {
		// Stale main-instructor reference; treat as an empty slot.
		res.Warnings = ValidateAssignment(st, x, req.TargetDate, req.TargetGroup, RoleMain)
		if len(res.Warnings) > 0 && !req.Confirm {
			return nil
		}
		unassignSilent(st, req.SourceDate, req.SourceGroup)
		assignSilent(st, req.TargetDate, req.TargetGroup, x.ID)
		res.Applied = true
		return nil
	}

	res.Warnings = ValidateSwap(st, x, req.SourceDate, req.SourceGroup, *y, req.TargetDate, req.TargetGroup)
	if len(res.Warnings) > 0 && !req.Confirm {
		return nil
	}
	assignSilent(st, req.SourceDate, req.SourceGroup, y.ID)
	assignSilent(st, req.TargetDate, req.TargetGroup, x.ID)
	res.Applied = true
	return nil
}

// dropOntoOccupied handles a sidebar drag onto an occupied slot. Without an
// explicit choice nothing happens — the slot is never silently overwritten.
func (s *ScheduleService) dropOntoOccupied(st *domain.State, req DropRequest, inst domain.Instructor, res *MutationResult) error {
	switch req.Choice {
	case ChoiceNone:
		res.ChoiceRequired = true
		return nil
	case ChoiceReplace:
		res.Warnings = ValidateAssignment(st, inst, req.TargetDate, req.TargetGroup, RoleMain)
		if len(res.Warnings) > 0 && !req.Confirm {
			return nil
		}
		assignSilent(st, req.TargetDate, req.TargetGroup, inst.ID)
		res.Applied = true
		return nil
	case ChoiceAssistant:
		res.Warnings = ValidateAssignment(st, inst, req.TargetDate, req.TargetGroup, RoleAssistant)
		if len(res.Warnings) > 0 && !req.Confirm {
			return nil
		}
		addAssistantSilent(st, req.TargetDate, req.TargetGroup, inst.ID)
		res.Applied = true
		return nil
	}
	return fmt.Errorf("service.ScheduleService.Drop: %w: unknown choice %q", domain.ErrValidation, req.Choice)
}
