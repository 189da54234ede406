package models

// LeaderboardEntry is one student's cross-week aggregate: the sum of all
// weekly totals and the number of weeks whose exercise passed the private
// test suite. Purely a ranked read-model, never written back.
type LeaderboardEntry struct {
	Name               string `json:"name" db:"name"`
	Email              string `json:"email" db:"mail"`
	TotalScore         int    `json:"total_score" db:"total_score"`
	ExerciseTotalScore int    `json:"exercise_total_score" db:"exercise_total_score"`
}
