package domain

// Group is one of the three fixed class levels that partition a day's
// teaching slots. The set is closed — there is no way to configure
// additional groups.
type Group string

const (
	GroupBeginners Group = "beginners"
	GroupChildren  Group = "children"
	GroupAdults    Group = "adults"
)

// Groups returns the three groups in canonical column order
// (beginners, children, adults). Callers must not mutate the result.
func Groups() []Group {
	return []Group{GroupBeginners, GroupChildren, GroupAdults}
}

// Valid reports whether g is one of the three known groups.
func (g Group) Valid() bool {
	switch g {
	case GroupBeginners, GroupChildren, GroupAdults:
		return true
	}
	return false
}

// Label returns the display name for the group ("Beginners", "Children",
// "Adults"). Unknown groups fall back to the raw value.
func (g Group) Label() string {
	switch g {
	case GroupBeginners:
		return "Beginners"
	case GroupChildren:
		return "Children"
	case GroupAdults:
		return "Adults"
	}
	return string(g)
}
