package state_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// countingNotifier records how many change signals fired.
type countingNotifier struct {
	mu    sync.Mutex
	count int
}

func (n *countingNotifier) ScheduleChanged() {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
}

func (n *countingNotifier) calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

func TestStore_startsSeeded(t *testing.T) {
	store := state.NewStore(nil)

	store.View(func(st *domain.State) {
		assert.Len(t, st.Instructors, 7)
		assert.Equal(t, []int{1, 4, 6}, st.ClassDays)
	})
}

func TestStore_UpdatePropagatesError(t *testing.T) {
	store := state.NewStore(nil)
	sentinel := errors.New("boom")

	err := store.Update(func(st *domain.State) error { return sentinel })
	require.ErrorIs(t, err, sentinel)
}

func TestStore_UpdateThenView(t *testing.T) {
	store := state.NewStore(nil)

	err := store.Update(func(st *domain.State) error {
		st.EnsureDay("2025-01-06").Beginners.MainID = "default-1"
		return nil
	})
	require.NoError(t, err)

	store.View(func(st *domain.State) {
		assert.Equal(t, "default-1", st.SlotAt("2025-01-06", domain.GroupBeginners).MainID)
	})
}

func TestStore_Replace(t *testing.T) {
	store := state.NewStore(nil)

	fresh := &domain.State{Instructors: []domain.Instructor{{ID: "x", Name: "X"}}}
	store.Replace(fresh)

	store.View(func(st *domain.State) {
		require.Len(t, st.Instructors, 1)
		assert.Equal(t, "x", st.Instructors[0].ID)
	})
}

// TestStore_NotifyIsExplicit verifies that updates never signal on their own;
// compound operations decide when one notification covers all their writes.
func TestStore_NotifyIsExplicit(t *testing.T) {
	n := &countingNotifier{}
	store := state.NewStore(n)

	_ = store.Update(func(st *domain.State) error { return nil })
	assert.Equal(t, 0, n.calls())

	store.Notify()
	store.Notify()
	assert.Equal(t, 2, n.calls())
}

// TestStore_ConcurrentUpdates hammers the store from several goroutines; the
// mutex must serialize them so no increment is lost.
func TestStore_ConcurrentUpdates(t *testing.T) {
	store := state.NewStore(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(func(st *domain.State) error {
				st.ClassDays = append(st.ClassDays, 0)
				return nil
			})
		}()
	}
	wg.Wait()

	store.View(func(st *domain.State) {
		assert.Len(t, st.ClassDays, 3+50)
	})
}
