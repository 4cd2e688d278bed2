// Package state owns the schedule-plus-roster aggregate. The original design
// relied on a single-threaded event loop for write safety; an HTTP server is
// concurrent, so the aggregate sits behind an explicit mutex here and every
// read or write goes through Store.View / Store.Update.
package state

import (
	"sync"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
)

// Notifier receives a fire-and-forget signal after a mutation that callers
// would want to redraw for. The core never waits on it and ignores its
// behavior entirely — it is a one-way signal, not a dependency.
type Notifier interface {
	ScheduleChanged()
}

// NopNotifier discards change signals. Used in tests and for silent
// multi-step operations.
type NopNotifier struct{}

// ScheduleChanged implements Notifier.
func (NopNotifier) ScheduleChanged() {}

// Store is the single owner of the mutable State. All access is serialized
// through its mutex: Update for writes, View for reads. Callers must not
// retain pointers into the state beyond the callback.
type Store struct {
	mu       sync.Mutex
	state    *domain.State
	notifier Notifier
}

// NewStore returns a Store owning a freshly seeded State.
func NewStore(n Notifier) *Store {
	if n == nil {
		n = NopNotifier{}
	}
	return &Store{
		state:    domain.NewState(),
		notifier: n,
	}
}

// Update runs fn with exclusive access to the state. The error is returned
// unchanged; a non-nil error does not roll anything back — mutations are
// expected to validate before writing.
func (s *Store) Update(fn func(st *domain.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// View runs fn with exclusive access to the state for reading.
func (s *Store) View(fn func(st *domain.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Replace swaps in a new aggregate wholesale. Used when a snapshot load or a
// share-link decode succeeds; the old state is only discarded at this point,
// never before, so a failed decode leaves everything untouched.
func (s *Store) Replace(st *domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Notify fires the change signal. Safe to call from anywhere; it must not be
// called while holding the store lock only by convention (the notifier may
// call back into View).
func (s *Store) Notify() {
	s.notifier.ScheduleChanged()
}
