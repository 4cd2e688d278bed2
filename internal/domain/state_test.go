package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

func TestNewState_seedsRosterAndClassDays(t *testing.T) {
	st := domain.NewState()

	require.Len(t, st.Instructors, 7)
	assert.Equal(t, "default-1", st.Instructors[0].ID)
	assert.Equal(t, "JonasB", st.Instructors[0].Name)
	assert.Equal(t, []int{1, 4, 6}, st.ClassDays)
	assert.NotNil(t, st.Schedule)
	assert.NotNil(t, st.CancelledDays)

	// Seed entries start with empty but non-nil capability sets.
	for _, inst := range st.Instructors {
		assert.NotNil(t, inst.Groups)
		assert.NotNil(t, inst.AvailableDates)
		assert.Empty(t, inst.Groups)
	}
}

func TestState_InstructorByID(t *testing.T) {
	st := domain.NewState()

	inst := st.InstructorByID("default-3")
	require.NotNil(t, inst)
	assert.Equal(t, "Björn", inst.Name)

	assert.Nil(t, st.InstructorByID("nope"))

	// The pointer aliases the roster entry, so edits stick.
	inst.Groups = append(inst.Groups, domain.GroupAdults)
	assert.True(t, st.InstructorByID("default-3").Teaches(domain.GroupAdults))
}

func TestState_EnsureDay_createsOnce(t *testing.T) {
	st := domain.NewState()

	day := st.EnsureDay("2025-01-06")
	require.NotNil(t, day)
	day.Beginners.MainID = "default-1"

	assert.Same(t, day, st.EnsureDay("2025-01-06"))
	assert.Equal(t, "default-1", st.SlotAt("2025-01-06", domain.GroupBeginners).MainID)
}

func TestState_SlotAt_missingDay(t *testing.T) {
	st := domain.NewState()
	assert.Nil(t, st.SlotAt("2025-01-06", domain.GroupBeginners))
}

// TestState_AssignedOn covers main assignments, assistant entries, and the
// unassigned case.
func TestState_AssignedOn(t *testing.T) {
	st := domain.NewState()
	day := st.EnsureDay("2025-01-06")
	day.Children.MainID = "default-1"
	day.Adults.Assistants = []string{"default-2"}

	assert.True(t, st.AssignedOn("2025-01-06", "default-1"))
	assert.True(t, st.AssignedOn("2025-01-06", "default-2"))
	assert.False(t, st.AssignedOn("2025-01-06", "default-3"))
	assert.False(t, st.AssignedOn("2025-01-07", "default-1"))
}

// TestState_Surplus verifies the three exclusion rules: no teachable group,
// not available, and already used that day (in any role).
func TestState_Surplus(t *testing.T) {
	st := domain.NewState()
	setUp := func(id string, groups []domain.Group, dates []string) {
		inst := st.InstructorByID(id)
		require.NotNil(t, inst)
		inst.Groups = groups
		inst.AvailableDates = dates
	}
	setUp("default-1", []domain.Group{domain.GroupAdults}, []string{"2025-01-06"})
	setUp("default-2", []domain.Group{domain.GroupChildren}, []string{"2025-01-06"})
	setUp("default-3", []domain.Group{domain.GroupChildren}, []string{"2025-01-06"})
	setUp("default-4", nil, []string{"2025-01-06"})             // no groups
	setUp("default-5", []domain.Group{domain.GroupAdults}, nil) // not available

	day := st.EnsureDay("2025-01-06")
	day.Children.MainID = "default-2"
	day.Adults.Assistants = []string{"default-3"}

	surplus := st.Surplus("2025-01-06")
	require.Len(t, surplus, 1)
	assert.Equal(t, "default-1", surplus[0].ID)
}

// TestState_ReconcileDefaults verifies that missing seed entries reappear
// after a load, except those the user explicitly deleted, and that existing
// entries are never overwritten.
func TestState_ReconcileDefaults(t *testing.T) {
	st := &domain.State{
		Instructors: []domain.Instructor{
			{ID: "default-1", Name: "JonasB", Groups: []domain.Group{domain.GroupAdults}},
			{ID: "custom-1", Name: "Guest"},
		},
		DeletedDefaultIDs: []string{"default-8"},
	}

	st.ReconcileDefaults()

	// 2 existing + 5 re-seeded (default-8 stays deleted).
	require.Len(t, st.Instructors, 7)
	assert.Nil(t, st.InstructorByID("default-8"))
	assert.NotNil(t, st.InstructorByID("default-6"))

	// The customized entry kept its capabilities.
	assert.True(t, st.InstructorByID("default-1").Teaches(domain.GroupAdults))
}
