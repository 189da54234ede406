package models

// TAUnassigned is the sentinel shown when a row has no teaching assistant.
// It is presentation-only and must never be persisted.
const TAUnassigned = "N/A"

// BaselineWeek is the pre-course roster snapshot. Rows in this week carry
// no scores and are excluded from statistics.
const BaselineWeek = 0

// GDScore holds the four group-discussion sub-scores, each in [0,5].
type GDScore struct {
	FA int `json:"fa"`
	FB int `json:"fb"`
	FC int `json:"fc"`
	FD int `json:"fd"`
}

// BonusScore holds the engagement bonus sub-scores, each in [0,5].
type BonusScore struct {
	Attempt  int `json:"attempt"`
	Good     int `json:"good"`
	FollowUp int `json:"followUp"`
}

// ExerciseScore holds the boolean quality flags of the weekly coding
// exercise.
type ExerciseScore struct {
	Submitted       bool `json:"submitted"`
	PrivateTestPass bool `json:"privateTestPass"`
	GoodStructure   bool `json:"goodStructure"`
	GoodDoc         bool `json:"goodDoc"`
}

// WeekRecord is one student's performance in one week, in the typed
// representation used by the calculator and the roster session. ID is a
// locally-assigned sequential identifier valid only within one fetched
// batch; the backend keys records by (name, week).
type WeekRecord struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email,omitempty"`
	Group      string        `json:"group"`
	TA         string        `json:"ta"`
	Attendance bool          `json:"attendance"`
	Week       int           `json:"week"`
	GD         GDScore       `json:"gdScore"`
	Bonus      BonusScore    `json:"bonusScore"`
	Exercise   ExerciseScore `json:"exerciseScore"`
	Total      int           `json:"total"`
}

// WeeklyAttendance reports how many students attended a given week.
type WeeklyAttendance struct {
	Week     int `json:"week"`
	Attended int `json:"attended"`
}
