package service

import (
	"math/rand"
	"sort"
	"time"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// Generator is the auto-generation engine. It rebuilds one month's main
// instructor assignments in two passes: a scarcity-first pass that gets
// every placeable instructor at least one slot, then a fair fill of the
// remainder. Assistants and merges in other months are untouched; the
// target month's assignment layer is rebuilt from scratch.
//
// The random source is injected so tests can seed it. Re-running on
// identical input may legitimately produce a different valid assignment —
// only the constraints are guaranteed, not assignment identity.
type Generator struct {
	store *state.Store
	rnd   *rand.Rand
}

// NewGenerator constructs a Generator over the shared store. A nil rnd gets
// a time-seeded source.
func NewGenerator(store *state.Store, rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{store: store, rnd: rnd}
}

// GenerateResult summarizes one auto-generation run.
type GenerateResult struct {
	// Assigned counts slots that received a main instructor.
	Assigned int `json:"assigned"`
	// Unfilled counts slots no candidate could fill. Never retried.
	Unfilled int `json:"unfilled"`
	// PerInstructor maps instructor id to total assignments this run.
	PerInstructor map[string]int `json:"perInstructor"`
}

// Generate runs the engine for the given month and notifies once.
func (g *Generator) Generate(year int, month time.Month) GenerateResult {
	var res GenerateResult
	_ = g.store.Update(func(st *domain.State) error {
		res = g.run(st, year, month)
		return nil
	})
	g.store.Notify()
	return res
}

type slotRef struct {
	date  string
	group domain.Group
}

type tally struct {
	perGroup map[domain.Group]int
	total    int
}

func (g *Generator) run(st *domain.State, year int, month time.Month) GenerateResult {
	classDates := domain.ClassDates(year, month, st.ClassDays, st.CancelledDays)

	// Clear-and-preserve: reset every class day's slots to unassigned,
	// keeping only the free-text descriptions. Assistants, feedback, and
	// the day's merge tag are part of the layer being rebuilt.
	for _, date := range classDates {
		rebuilt := &domain.DaySchedule{}
		if old := st.Day(date); old != nil {
			rebuilt.Beginners.Description = old.Beginners.Description
			rebuilt.Children.Description = old.Children.Description
			rebuilt.Adults.Description = old.Adults.Description
		}
		st.Schedule[date] = rebuilt
	}

	// The slot universe: every (date, group) pair on a configured,
	// non-cancelled class day this month.
	var universe []slotRef
	for _, date := range classDates {
		for _, grp := range domain.Groups() {
			universe = append(universe, slotRef{date, grp})
		}
	}

	counts := make(map[string]*tally, len(st.Instructors))
	for _, inst := range st.Instructors {
		counts[inst.ID] = &tally{perGroup: make(map[domain.Group]int)}
	}
	filled := make(map[slotRef]bool)
	usedOnDay := make(map[string]map[string]bool, len(classDates))
	for _, date := range classDates {
		usedOnDay[date] = make(map[string]bool)
	}

	place := func(ref slotRef, instructorID string) {
		assignSilent(st, ref.date, ref.group, instructorID)
		filled[ref] = true
		usedOnDay[ref.date][instructorID] = true
		t := counts[instructorID]
		t.perGroup[ref.group]++
		t.total++
	}

	// Pass 1 — scarcity-first guarantee. Instructors with the fewest
	// eligible slots are the hardest to place later, so they pick first
	// while the most options remain open. Ties break by id so the
	// scarcity ordering is stable; the slot itself is picked at random.
	eligibleCount := func(inst domain.Instructor) int {
		n := 0
		for _, ref := range universe {
			if inst.Teaches(ref.group) && inst.AvailableOn(ref.date) {
				n++
			}
		}
		return n
	}
	byScarcity := make([]domain.Instructor, len(st.Instructors))
	copy(byScarcity, st.Instructors)
	sort.SliceStable(byScarcity, func(i, j int) bool {
		ci, cj := eligibleCount(byScarcity[i]), eligibleCount(byScarcity[j])
		if ci != cj {
			return ci < cj
		}
		return byScarcity[i].ID < byScarcity[j].ID
	})

	for _, inst := range byScarcity {
		if counts[inst.ID].total > 0 {
			continue
		}
		var open []slotRef
		for _, ref := range universe {
			if inst.Teaches(ref.group) && inst.AvailableOn(ref.date) &&
				!filled[ref] && !usedOnDay[ref.date][inst.ID] {
				open = append(open, ref)
			}
		}
		if len(open) == 0 {
			continue // nothing this instructor can take; never forced
		}
		place(open[g.rnd.Intn(len(open))], inst.ID)
	}

	// Pass 2 — fair fill of the remainder, in date order. Group order is
	// shuffled per day so no group systematically drains the candidate
	// pool first. Candidates sort by use in this group, then total load.
	for _, date := range classDates {
		groups := domain.Groups()
		g.rnd.Shuffle(len(groups), func(i, j int) {
			groups[i], groups[j] = groups[j], groups[i]
		})

		for _, grp := range groups {
			ref := slotRef{date, grp}
			if filled[ref] {
				continue
			}
			var candidates []domain.Instructor
			for _, inst := range st.Instructors {
				if inst.Teaches(grp) && inst.AvailableOn(date) && !usedOnDay[date][inst.ID] {
					candidates = append(candidates, inst)
				}
			}
			if len(candidates) == 0 {
				continue // left unfilled; no backtracking
			}
			sort.SliceStable(candidates, func(i, j int) bool {
				ti, tj := counts[candidates[i].ID], counts[candidates[j].ID]
				if ti.perGroup[grp] != tj.perGroup[grp] {
					return ti.perGroup[grp] < tj.perGroup[grp]
				}
				return ti.total < tj.total
			})
			place(ref, candidates[0].ID)
		}
	}

	res := GenerateResult{
		Assigned:      len(filled),
		Unfilled:      len(universe) - len(filled),
		PerInstructor: make(map[string]int, len(counts)),
	}
	for id, t := range counts {
		if t.total > 0 {
			res.PerInstructor[id] = t.total
		}
	}
	return res
}
