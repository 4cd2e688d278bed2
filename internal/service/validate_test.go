package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/service"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// newTestStore builds a store whose seed roster has three fully capable,
// fully available instructors for the test dates used throughout the
// service tests.
func newTestStore(t *testing.T) *state.Store {
	t.Helper()
	store := state.NewStore(nil)
	err := store.Update(func(st *domain.State) error {
		st.Instructors = []domain.Instructor{
			{
				ID: "a", Name: "Anna",
				Groups:         []domain.Group{domain.GroupBeginners, domain.GroupChildren, domain.GroupAdults},
				AvailableDates: []string{"2025-01-06", "2025-01-09"},
			},
			{
				ID: "b", Name: "Bert",
				Groups:         []domain.Group{domain.GroupBeginners, domain.GroupChildren, domain.GroupAdults},
				AvailableDates: []string{"2025-01-06", "2025-01-09"},
			},
			{
				ID: "c", Name: "Cleo",
				Groups:         []domain.Group{domain.GroupChildren},
				AvailableDates: []string{"2025-01-06"},
			},
		}
		return nil
	})
	require.NoError(t, err)
	return store
}

func viewState(t *testing.T, store *state.Store, fn func(st *domain.State)) {
	t.Helper()
	store.View(fn)
}

// TestValidateAssignment_noIssues is the happy path: available, capable,
// unbooked.
func TestValidateAssignment_noIssues(t *testing.T) {
	store := newTestStore(t)
	viewState(t, store, func(st *domain.State) {
		warnings := service.ValidateAssignment(st, *st.InstructorByID("a"), "2025-01-06", domain.GroupAdults, service.RoleMain)
		assert.Empty(t, warnings)
	})
}

// TestValidateAssignment_orderAndMessages pins the fixed check order and the
// exact warning strings: availability, capability, then main double-booking.
func TestValidateAssignment_orderAndMessages(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(func(st *domain.State) error {
		st.EnsureDay("2025-01-09").Beginners.MainID = "c"
		return nil
	})
	require.NoError(t, err)

	viewState(t, store, func(st *domain.State) {
		// Cleo: not available on the 9th, cannot teach adults, already main
		// for beginners that day.
		warnings := service.ValidateAssignment(st, *st.InstructorByID("c"), "2025-01-09", domain.GroupAdults, service.RoleMain)
		assert.Equal(t, []string{
			"Cleo is not available on this date",
			"Cleo cannot teach Adults",
			"Cleo is already assigned to Beginners on this day",
		}, warnings)
	})
}

// TestValidateAssignment_assistantDoubleBooking covers warning kinds specific
// to assistants: assisting elsewhere the same day, and being the target
// slot's own main instructor.
func TestValidateAssignment_assistantDoubleBooking(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(func(st *domain.State) error {
		day := st.EnsureDay("2025-01-06")
		day.Beginners.Assistants = []string{"a"}
		day.Children.MainID = "b"
		return nil
	})
	require.NoError(t, err)

	viewState(t, store, func(st *domain.State) {
		warnings := service.ValidateAssignment(st, *st.InstructorByID("a"), "2025-01-06", domain.GroupAdults, service.RoleMain)
		assert.Equal(t, []string{"Anna is already an assistant for Beginners on this day"}, warnings)

		warnings = service.ValidateAssignment(st, *st.InstructorByID("b"), "2025-01-06", domain.GroupChildren, service.RoleAssistant)
		assert.Equal(t, []string{"Bert is already the main instructor for this slot"}, warnings)
	})
}

// TestValidateAssignment_mainRoleSkipsOwnSlot verifies that re-assigning an
// instructor to the slot they already hold does not count as double-booking.
func TestValidateAssignment_mainRoleSkipsOwnSlot(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(func(st *domain.State) error {
		st.EnsureDay("2025-01-06").Beginners.MainID = "a"
		return nil
	})
	require.NoError(t, err)

	viewState(t, store, func(st *domain.State) {
		warnings := service.ValidateAssignment(st, *st.InstructorByID("a"), "2025-01-06", domain.GroupBeginners, service.RoleMain)
		assert.Empty(t, warnings)
	})
}

// TestValidateSwap_sameDay pins the asymmetry of same-day swap validation:
// the vacated slot is only suppressed for the counterparty's direction, so
// the source instructor still reports their own current slot as a
// double-booking. Callers confirm through it.
func TestValidateSwap_sameDay(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(func(st *domain.State) error {
		day := st.EnsureDay("2025-01-06")
		day.Beginners.MainID = "a"
		day.Children.MainID = "b"
		return nil
	})
	require.NoError(t, err)

	viewState(t, store, func(st *domain.State) {
		warnings := service.ValidateSwap(st,
			*st.InstructorByID("a"), "2025-01-06", domain.GroupBeginners,
			*st.InstructorByID("b"), "2025-01-06", domain.GroupChildren)
		assert.Equal(t, []string{"Anna is already assigned to Beginners on this day"}, warnings)
	})
}

// TestValidateSwap_bothDirections verifies that warnings concatenate with the
// source instructor's first, using date-qualified messages for the
// counterparty.
func TestValidateSwap_bothDirections(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(func(st *domain.State) error {
		st.EnsureDay("2025-01-06").Children.MainID = "c"
		st.EnsureDay("2025-01-09").Adults.MainID = "a"
		return nil
	})
	require.NoError(t, err)

	viewState(t, store, func(st *domain.State) {
		// Cleo moves to adults on the 9th (unavailable, incapable); Anna
		// moves back to children on the 6th (fine).
		warnings := service.ValidateSwap(st,
			*st.InstructorByID("c"), "2025-01-06", domain.GroupChildren,
			*st.InstructorByID("a"), "2025-01-09", domain.GroupAdults)
		assert.Equal(t, []string{
			"Cleo is not available on this date",
			"Cleo cannot teach Adults",
		}, warnings)

		// Reverse the direction: now Anna is fine but Cleo's warnings come
		// date-qualified, in the counterparty position.
		warnings = service.ValidateSwap(st,
			*st.InstructorByID("a"), "2025-01-09", domain.GroupAdults,
			*st.InstructorByID("c"), "2025-01-06", domain.GroupChildren)
		assert.Equal(t, []string{
			"Cleo is not available on 2025-01-09",
			"Cleo cannot teach Adults",
		}, warnings)
	})
}
