package domain

// State is the schedule-plus-roster aggregate. It is the only mutable shared
// object in the system; ownership and locking live in the state package, not
// here. All methods on State are pure queries or local mutations — no I/O.
type State struct {
	Instructors []Instructor `json:"instructors"`

	// Schedule maps ISO date strings to day schedules. Days are created
	// lazily on first assignment and deleted when a month is cleared.
	Schedule map[string]*DaySchedule `json:"schedule"`

	// ClassDays holds the configured weekly class-day pattern as weekday
	// indices (0=Sunday .. 6=Saturday).
	ClassDays []int `json:"classDays"`

	// CancelledDays flags dates excluded from scheduling and display.
	CancelledDays map[string]bool `json:"cancelledDays"`

	// DeletedDefaultIDs records seed-roster ids the user deleted, so the
	// load-time reconciliation never resurrects them.
	DeletedDefaultIDs []string `json:"deletedDefaultIds"`
}

// DefaultClassDays returns a fresh copy of the default weekly class-day
// pattern: Monday, Thursday, Saturday.
func DefaultClassDays() []int {
	return []int{1, 4, 6}
}

// NewState returns a State seeded with the default roster and the default
// class-day pattern.
func NewState() *State {
	return &State{
		Instructors:   DefaultInstructors(),
		Schedule:      make(map[string]*DaySchedule),
		ClassDays:     DefaultClassDays(),
		CancelledDays: make(map[string]bool),
	}
}

// InstructorByID returns a pointer to the roster entry with the given id,
// or nil if no such instructor exists.
func (s *State) InstructorByID(id string) *Instructor {
	for i := range s.Instructors {
		if s.Instructors[i].ID == id {
			return &s.Instructors[i]
		}
	}
	return nil
}

// CapableOf returns the instructors that can teach the given group.
func (s *State) CapableOf(g Group) []Instructor {
	var out []Instructor
	for _, inst := range s.Instructors {
		if inst.Teaches(g) {
			out = append(out, inst)
		}
	}
	return out
}

// SlotAt returns the slot for (date, group), or nil when the day has no
// schedule entry yet or the group is unknown.
func (s *State) SlotAt(date string, g Group) *Slot {
	day, ok := s.Schedule[date]
	if !ok {
		return nil
	}
	return day.Slot(g)
}

// Day returns the schedule entry for date, or nil when none exists.
func (s *State) Day(date string) *DaySchedule {
	return s.Schedule[date]
}

// EnsureDay returns the schedule entry for date, creating an empty one
// (three unassigned slots, no merge) if the day has none yet.
func (s *State) EnsureDay(date string) *DaySchedule {
	if day, ok := s.Schedule[date]; ok {
		return day
	}
	if s.Schedule == nil {
		s.Schedule = make(map[string]*DaySchedule)
	}
	day := &DaySchedule{}
	s.Schedule[date] = day
	return day
}

// AssignedOn reports whether the instructor is assigned on the date, either
// as main instructor or as assistant in any group.
func (s *State) AssignedOn(date, instructorID string) bool {
	day, ok := s.Schedule[date]
	if !ok {
		return false
	}
	for _, g := range Groups() {
		slot := day.Slot(g)
		if slot.MainID == instructorID || slot.HasAssistant(instructorID) {
			return true
		}
	}
	return false
}

// Surplus returns the instructors available on the date, capable of teaching
// at least one group, and not currently assigned (main or assistant) to any
// group that day. Order follows the roster.
func (s *State) Surplus(date string) []Instructor {
	var out []Instructor
	for _, inst := range s.Instructors {
		if len(inst.Groups) == 0 || !inst.AvailableOn(date) {
			continue
		}
		if s.AssignedOn(date, inst.ID) {
			continue
		}
		out = append(out, inst)
	}
	return out
}
