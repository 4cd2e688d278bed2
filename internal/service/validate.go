package service

import (
	"fmt"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// Role distinguishes what an instructor is being validated for: taking over
// a slot as main instructor, or joining it as an assistant.
type Role string

const (
	RoleMain      Role = "main"
	RoleAssistant Role = "assistant"
)

// ValidateAssignment checks a candidate (instructor, date, group, role)
// against the current schedule and returns an ordered list of human-readable
// warnings. An empty list means no issues. Warnings are advisory — the
// caller decides whether to proceed — and this function never mutates state.
//
// Check order is fixed (callers and tests rely on it):
//  1. date availability
//  2. group capability
//  3. same-day double-booking as main instructor in another group
//  4. same-day double-booking as assistant in another group
//  5. (assistant role only) already main instructor of the target slot
func ValidateAssignment(st *domain.State, inst domain.Instructor, date string, group domain.Group, role Role) []string {
	var warnings []string

	if !inst.AvailableOn(date) {
		warnings = append(warnings, fmt.Sprintf("%s is not available on this date", inst.Name))
	}
	if !inst.Teaches(group) {
		warnings = append(warnings, fmt.Sprintf("%s cannot teach %s", inst.Name, group.Label()))
	}

	for _, g := range domain.Groups() {
		if g == group {
			continue
		}
		if slot := st.SlotAt(date, g); slot != nil && slot.MainID == inst.ID {
			warnings = append(warnings, fmt.Sprintf("%s is already assigned to %s on this day", inst.Name, g.Label()))
		}
	}
	for _, g := range domain.Groups() {
		if g == group {
			continue
		}
		if slot := st.SlotAt(date, g); slot != nil && slot.HasAssistant(inst.ID) {
			warnings = append(warnings, fmt.Sprintf("%s is already an assistant for %s on this day", inst.Name, g.Label()))
		}
	}

	if role == RoleAssistant {
		if slot := st.SlotAt(date, group); slot != nil && slot.MainID == inst.ID {
			warnings = append(warnings, fmt.Sprintf("%s is already the main instructor for this slot", inst.Name))
		}
	}

	return warnings
}

// ValidateSwap checks both directions of a trade: x (main of the source
// slot) moving to the target slot, and y (main of the target slot) moving
// back to the source slot. Warnings from both directions are concatenated,
// x's first.
//
// For y the double-booking check skips the slot x is vacating — y landing
// there is the whole point of the swap.
func ValidateSwap(st *domain.State, x domain.Instructor, sourceDate string, sourceGroup domain.Group, y domain.Instructor, targetDate string, targetGroup domain.Group) []string {
	warnings := ValidateAssignment(st, x, targetDate, targetGroup, RoleMain)

	if !y.AvailableOn(sourceDate) {
		warnings = append(warnings, fmt.Sprintf("%s is not available on %s", y.Name, sourceDate))
	}
	if !y.Teaches(sourceGroup) {
		warnings = append(warnings, fmt.Sprintf("%s cannot teach %s", y.Name, sourceGroup.Label()))
	}
	for _, g := range domain.Groups() {
		if g == sourceGroup {
			continue
		}
		if targetDate == sourceDate && targetGroup == g {
			continue
		}
		if slot := st.SlotAt(sourceDate, g); slot != nil && slot.MainID == y.ID {
			warnings = append(warnings, fmt.Sprintf("%s is already assigned to %s on %s", y.Name, g.Label(), sourceDate))
		}
	}

	return warnings
}
