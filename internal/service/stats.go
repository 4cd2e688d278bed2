package service

import (
	"time"

	"github.com/jbackman/instructor-scheduler/backend/internal/domain"
	"github.com/jbackman/instructor-scheduler/backend/internal/state"
)

// InstructorStats holds one roster member's assignment counts for a month.
type InstructorStats struct {
	Name      string `json:"name"`
	Beginners int    `json:"beginners"`
	Children  int    `json:"children"`
	Adults    int    `json:"adults"`
	Total     int    `json:"total"`
}

func (s *InstructorStats) bump(g domain.Group) {
	switch g {
	case domain.GroupBeginners:
		s.Beginners++
	case domain.GroupChildren:
		s.Children++
	case domain.GroupAdults:
		s.Adults++
	}
	s.Total++
}

// MonthStats summarizes a month's schedule. Only configured, non-cancelled
// class days count; a group merged into another day's block contributes
// neither an assignment nor an unfilled slot.
type MonthStats struct {
	Instructors      map[string]*InstructorStats `json:"instructors"`
	TotalAssignments int                         `json:"totalAssignments"`
	UnassignedSlots  int                         `json:"unassignedSlots"`
	MergedDays       int                         `json:"mergedDays"`
	ClassDays        int                         `json:"classDays"`
}

// StatsService computes per-month assignment statistics.
type StatsService struct {
	store *state.Store
}

// NewStatsService constructs a StatsService over the shared store.
func NewStatsService(store *state.Store) *StatsService {
	return &StatsService{store: store}
}

// Month computes the statistics for the given month.
func (s *StatsService) Month(year int, month time.Month) MonthStats {
	stats := MonthStats{Instructors: make(map[string]*InstructorStats)}

	s.store.View(func(st *domain.State) {
		for _, inst := range st.Instructors {
			stats.Instructors[inst.ID] = &InstructorStats{Name: inst.Name}
		}

		classDates := domain.ClassDates(year, month, st.ClassDays, st.CancelledDays)
		stats.ClassDays = len(classDates)

		for _, date := range classDates {
			day := st.Day(date)
			merge := domain.MergeNone
			if day != nil {
				merge = day.Merge
			}
			if merge != domain.MergeNone {
				stats.MergedDays++
			}

			for _, g := range domain.Groups() {
				if _, merged := merge.MergedInto(g); merged {
					continue
				}
				var slot *domain.Slot
				if day != nil {
					slot = day.Slot(g)
				}
				if slot == nil || slot.MainID == "" {
					stats.UnassignedSlots++
					continue
				}
				// A stale id counts as neither assigned nor open.
				if is, ok := stats.Instructors[slot.MainID]; ok {
					is.bump(g)
					stats.TotalAssignments++
				}
			}
		}
	})

	return stats
}
