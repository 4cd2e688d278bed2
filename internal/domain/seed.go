package domain

// defaultRoster is the seed roster merged into loaded state so club members
// show up even when an old snapshot predates them. Capabilities and
// availability start empty; each member fills theirs in.
var defaultRoster = []Instructor{
	{ID: "default-1", Name: "JonasB"},
	{ID: "default-2", Name: "JonasS"},
	{ID: "default-3", Name: "Björn"},
	{ID: "default-4", Name: "Daniel"},
	{ID: "default-5", Name: "Stoffe"},
	{ID: "default-6", Name: "Ida"},
	{ID: "default-8", Name: "Mike"},
}

// DefaultInstructors returns a fresh copy of the seed roster with non-nil
// (empty) group and date slices, so slots can be appended without nil checks.
func DefaultInstructors() []Instructor {
	out := make([]Instructor, len(defaultRoster))
	for i, inst := range defaultRoster {
		inst.Groups = []Group{}
		inst.AvailableDates = []string{}
		out[i] = inst
	}
	return out
}

// ReconcileDefaults appends any seed instructor missing from the roster,
// skipping ids the user has explicitly deleted. Called after loading a
// snapshot so new seed entries appear without resurrecting removed ones.
func (s *State) ReconcileDefaults() {
	deleted := make(map[string]bool, len(s.DeletedDefaultIDs))
	for _, id := range s.DeletedDefaultIDs {
		deleted[id] = true
	}
	for _, def := range DefaultInstructors() {
		if deleted[def.ID] || s.InstructorByID(def.ID) != nil {
			continue
		}
		s.Instructors = append(s.Instructors, def)
	}
}
