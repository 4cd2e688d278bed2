package domain

// Slot is the (date, group) assignment unit. It has a fixed shape: all
// fields are always present with empty defaults, never added conditionally.
// An empty MainID means the slot is unassigned.
type Slot struct {
	MainID      string   `json:"instructorId"`
	Assistants  []string `json:"assistants"`
	Description string   `json:"description"`
	Feedback    string   `json:"feedbackPoints"`
}

// Clone returns a copy of the slot with its own assistants slice, detached
// from the original's backing array.
func (s Slot) Clone() Slot {
	s.Assistants = append([]string(nil), s.Assistants...)
	return s
}

// HasAssistant reports whether id is in the slot's assistant list.
func (s *Slot) HasAssistant(id string) bool {
	for _, a := range s.Assistants {
		if a == id {
			return true
		}
	}
	return false
}

// DaySchedule holds a calendar day's three group slots plus the day's merge
// tag. The merge tag lives here — once per day — because it describes a
// relationship between slots, not a property of any single slot.
type DaySchedule struct {
	Beginners Slot     `json:"beginners"`
	Children  Slot     `json:"children"`
	Adults    Slot     `json:"adults"`
	Merge     MergeTag `json:"merge,omitempty"`
}

// Clone returns a deep copy of the day. Callers that hand schedule data to
// code running outside the state store's lock must clone first.
func (d *DaySchedule) Clone() *DaySchedule {
	return &DaySchedule{
		Beginners: d.Beginners.Clone(),
		Children:  d.Children.Clone(),
		Adults:    d.Adults.Clone(),
		Merge:     d.Merge,
	}
}

// Slot returns a pointer to the day's slot for the given group, or nil for
// an unknown group. The pointer aliases the DaySchedule; mutations through
// it are visible to other readers of the day.
func (d *DaySchedule) Slot(g Group) *Slot {
	switch g {
	case GroupBeginners:
		return &d.Beginners
	case GroupChildren:
		return &d.Children
	case GroupAdults:
		return &d.Adults
	}
	return nil
}
