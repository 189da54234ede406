package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bitshala/admin/internal/models"
)

func TestGDTotal(t *testing.T) {
	tests := []struct {
		name string
		gd   models.GDScore
		want int
	}{
		{"all zero", models.GDScore{}, 0},
		{"all max", models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}, 100},
		{"mixed", models.GDScore{FA: 3, FB: 5, FC: 5, FD: 5}, 88},
		{"depth weighted double", models.GDScore{FA: 1, FB: 1}, 12},
		{"negative clamped to zero", models.GDScore{FA: -2, FB: 5, FC: 5, FD: 5}, 70},
		{"overshoot clamped to five", models.GDScore{FA: 9, FB: 5, FC: 5, FD: 5}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GDTotal(tt.gd))
		})
	}
}

func TestBonusTotal(t *testing.T) {
	assert.Equal(t, 0, BonusTotal(models.BonusScore{}))
	assert.Equal(t, 30, BonusTotal(models.BonusScore{Attempt: 1, Good: 1, FollowUp: 1}))
	assert.Equal(t, 150, BonusTotal(models.BonusScore{Attempt: 5, Good: 5, FollowUp: 5}))
	assert.Equal(t, 50, BonusTotal(models.BonusScore{Attempt: 12, Good: -3}))
}

func TestExerciseTotal(t *testing.T) {
	assert.Equal(t, 0, ExerciseTotal(models.ExerciseScore{}))
	assert.Equal(t, 100, ExerciseTotal(models.ExerciseScore{
		Submitted: true, PrivateTestPass: true, GoodStructure: true, GoodDoc: true,
	}))
	assert.Equal(t, 60, ExerciseTotal(models.ExerciseScore{Submitted: true, PrivateTestPass: true}))
	assert.Equal(t, 20, ExerciseTotal(models.ExerciseScore{GoodDoc: true}))
}

func TestTotalIsSumOfComponents(t *testing.T) {
	gd := models.GDScore{FA: 4, FB: 3, FC: 2, FD: 1}
	bonus := models.BonusScore{Attempt: 2, Good: 1, FollowUp: 0}
	ex := models.ExerciseScore{Submitted: true, GoodStructure: true}

	assert.Equal(t, GDTotal(gd)+BonusTotal(bonus)+ExerciseTotal(ex), Total(gd, bonus, ex))
}

func TestStats(t *testing.T) {
	t.Run("empty history yields zeroes", func(t *testing.T) {
		s := Stats(nil)
		assert.Equal(t, models.WeeklyStats{}, s)
		assert.Zero(t, s.AvgScore)
		assert.Zero(t, s.OverallPercentage)
		assert.Zero(t, s.AttendanceRate)
	})

	t.Run("baseline week is excluded", func(t *testing.T) {
		s := Stats([]models.WeekRecord{
			{Week: models.BaselineWeek, Attendance: true, GD: models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}},
		})
		assert.Equal(t, models.WeeklyStats{}, s)
	})

	t.Run("aggregates across weeks", func(t *testing.T) {
		s := Stats([]models.WeekRecord{
			{Week: 1, Attendance: true, GD: models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}},
			{Week: 2, Attendance: false},
			{Week: 3, Attendance: true, Exercise: models.ExerciseScore{Submitted: true, PrivateTestPass: true}},
		})
		assert.Equal(t, 3, s.TotalWeeks)
		assert.Equal(t, 2, s.AttendedWeeks)
		assert.Equal(t, 160, s.TotalScore)
		assert.Equal(t, 600, s.MaxPossibleScore)
		assert.InDelta(t, 53.33, s.AvgScore, 0.01)
		assert.InDelta(t, 26.67, s.OverallPercentage, 0.01)
		assert.InDelta(t, 66.67, s.AttendanceRate, 0.01)
	})
}
