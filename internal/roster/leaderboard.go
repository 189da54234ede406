package roster

import (
	"sort"

	"github.com/Bitshala/admin/internal/models"
)

// LeaderboardColumn names a sortable leaderboard column.
type LeaderboardColumn string

const (
	LeaderboardByTotal    LeaderboardColumn = "total_score"
	LeaderboardByExercise LeaderboardColumn = "exercise_total_score"
)

// ColumnState is one column's position in the three-state sort cycle.
type ColumnState int

const (
	SortDefault ColumnState = iota
	SortAscending
	SortDescending
)

// LeaderboardSort cycles each column independently through
// default/ascending/descending. Activating one column resets the other
// to default, so at most one column orders the view at a time.
type LeaderboardSort struct {
	column LeaderboardColumn
	state  ColumnState
}

// Toggle advances the clicked column to its next state. Clicking a
// different column starts its cycle at ascending and clears the previous
// column's indicator.
func (s *LeaderboardSort) Toggle(col LeaderboardColumn) {
	if s.column != col {
		s.column = col
		s.state = SortAscending
		return
	}
	s.state = (s.state + 1) % 3
}

// State returns the cycle position for the given column.
func (s *LeaderboardSort) State(col LeaderboardColumn) ColumnState {
	if s.column != col {
		return SortDefault
	}
	return s.state
}

// Apply orders the entries per the current sort state. In the default
// state the fetch order is preserved. The input is never mutated.
func (s *LeaderboardSort) Apply(entries []models.LeaderboardEntry) []models.LeaderboardEntry {
	out := make([]models.LeaderboardEntry, len(entries))
	copy(out, entries)
	if s.state == SortDefault {
		return out
	}

	value := func(e models.LeaderboardEntry) int {
		if s.column == LeaderboardByExercise {
			return e.ExerciseTotalScore
		}
		return e.TotalScore
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.state == SortDescending {
			return value(out[i]) > value(out[j])
		}
		return value(out[i]) < value(out[j])
	})
	return out
}
