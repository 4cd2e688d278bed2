// Package domain contains the core data types for the instructor scheduler.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, share, handler).
package domain

// Instructor is a member of the global roster who can be assigned to slots.
// The ID is opaque and stable: seed instructors keep their "default-N" ids
// across sessions, user-created instructors get a generated UUID string.
type Instructor struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Groups is the set of group categories this instructor can teach.
	Groups []Group `json:"groups"`

	// AvailableDates holds the calendar dates (ISO "2006-01-02" strings)
	// the instructor is available on, in the order they were selected.
	AvailableDates []string `json:"availableDates"`
}

// Teaches reports whether the instructor can teach the given group.
func (i Instructor) Teaches(g Group) bool {
	for _, have := range i.Groups {
		if have == g {
			return true
		}
	}
	return false
}

// AvailableOn reports whether the instructor is available on the given date.
func (i Instructor) AvailableOn(date string) bool {
	for _, d := range i.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}
