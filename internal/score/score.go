// Package score implements the weekly scoring formulas for cohort
// participants. All calculators are pure functions over the score
// component structs; component values outside [0, 5] are clamped
// before weighting.
package score

import "github.com/Bitshala/admin/internal/models"

// MaxWeekly is the nominal weekly maximum used as the denominator for
// overall percentages. Bonus points can push an exceptional week past
// it, so percentages above 100 are possible and intentional.
const MaxWeekly = 200

// GDTotal weights the four group-discussion dimensions. Depth of answers
// counts double the communication dimensions.
func GDTotal(g models.GDScore) int {
	return 6*clamp(g.FA) + 6*clamp(g.FB) + 4*clamp(g.FC) + 4*clamp(g.FD)
}

// BonusTotal weights the three bonus-question dimensions equally.
func BonusTotal(b models.BonusScore) int {
	return 10 * (clamp(b.Attempt) + clamp(b.Good) + clamp(b.FollowUp))
}

// ExerciseTotal scores the weekly exercise from its boolean facts.
// Passing the private test dominates; submission and the two quality
// flags round out the rest.
func ExerciseTotal(e models.ExerciseScore) int {
	t := 0
	if e.Submitted {
		t += 10
	}
	if e.PrivateTestPass {
		t += 50
	}
	if e.GoodStructure {
		t += 20
	}
	if e.GoodDoc {
		t += 20
	}
	return t
}

// Total is the weekly total for one participant.
func Total(g models.GDScore, b models.BonusScore, e models.ExerciseScore) int {
	return GDTotal(g) + BonusTotal(b) + ExerciseTotal(e)
}

// Stats aggregates a participant's week records into summary statistics.
// The baseline week is skipped entirely; weeks where the participant was
// absent still count toward the denominator. An empty history yields all
// zeroes rather than NaN.
func Stats(weeks []models.WeekRecord) models.WeeklyStats {
	var s models.WeeklyStats
	for _, w := range weeks {
		if w.Week == models.BaselineWeek {
			continue
		}
		s.TotalWeeks++
		if w.Attendance {
			s.AttendedWeeks++
		}
		s.TotalScore += Total(w.GD, w.Bonus, w.Exercise)
	}
	s.MaxPossibleScore = s.TotalWeeks * MaxWeekly
	if s.TotalWeeks == 0 {
		return s
	}
	s.AvgScore = float64(s.TotalScore) / float64(s.TotalWeeks)
	s.OverallPercentage = float64(s.TotalScore) / float64(s.MaxPossibleScore) * 100
	s.AttendanceRate = float64(s.AttendedWeeks) / float64(s.TotalWeeks) * 100
	return s
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}
