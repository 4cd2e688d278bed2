package domain

// MergeTag describes whether adjacent group slots on a day are combined into
// one teaching block. It is stored once per day, not per slot; everything
// else about merges is derived from it.
type MergeTag string

const (
	// MergeNone is the default: three independent group slots.
	MergeNone MergeTag = ""
	// MergeBegChi absorbs the children slot into the beginners block.
	MergeBegChi MergeTag = "beg-chi"
	// MergeChiAdu absorbs the adults slot into the children block.
	MergeChiAdu MergeTag = "chi-adu"
	// MergeAll absorbs both children and adults into the beginners block.
	MergeAll MergeTag = "all"
)

// Valid reports whether m is one of the four known merge tags.
func (m MergeTag) Valid() bool {
	switch m {
	case MergeNone, MergeBegChi, MergeChiAdu, MergeAll:
		return true
	}
	return false
}

// MergedInto returns the primary group whose block subsumes g on a day
// tagged m, and whether g is subsumed at all. A group is never merged into
// itself: the primary group of a block reports (_, false).
func (m MergeTag) MergedInto(g Group) (Group, bool) {
	switch m {
	case MergeBegChi:
		if g == GroupChildren {
			return GroupBeginners, true
		}
	case MergeChiAdu:
		if g == GroupAdults {
			return GroupChildren, true
		}
	case MergeAll:
		if g == GroupChildren || g == GroupAdults {
			return GroupBeginners, true
		}
	}
	return "", false
}

// Span returns how many group columns g's block occupies on a day tagged m:
// 3 only for (all, beginners), 2 for (beg-chi, beginners) and
// (chi-adu, children), otherwise 1.
func (m MergeTag) Span(g Group) int {
	switch {
	case m == MergeAll && g == GroupBeginners:
		return 3
	case m == MergeBegChi && g == GroupBeginners:
		return 2
	case m == MergeChiAdu && g == GroupChildren:
		return 2
	}
	return 1
}

// Label returns the display label for g's block on a day tagged m.
// Groups that head a merged block get a combined label; everything else
// keeps its plain group label.
func (m MergeTag) Label(g Group) string {
	switch {
	case m == MergeAll && g == GroupBeginners:
		return "All Levels"
	case m == MergeBegChi && g == GroupBeginners:
		return "Beginners + Children"
	case m == MergeChiAdu && g == GroupChildren:
		return "Children + Adults"
	}
	return g.Label()
}
