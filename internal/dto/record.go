package dto

import (
	"strings"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/internal/score"
)

// Flag values used by the roster wire format for boolean fields.
const (
	FlagYes = "yes"
	FlagNo  = "no"
)

// WeekRecordWire is the roster row as it travels over the wire. Boolean
// facts are "yes"/"no" strings and every score field is optional; absent
// fields normalize to their zero values.
type WeekRecordWire struct {
	Name                      string  `json:"name" validate:"required"`
	GroupID                   string  `json:"group_id" validate:"required"`
	TA                        *string `json:"ta"`
	Attendance                *string `json:"attendance" validate:"omitempty,oneof=yes no"`
	FA                        *int    `json:"fa" validate:"omitempty,gte=0,lte=5"`
	FB                        *int    `json:"fb" validate:"omitempty,gte=0,lte=5"`
	FC                        *int    `json:"fc" validate:"omitempty,gte=0,lte=5"`
	FD                        *int    `json:"fd" validate:"omitempty,gte=0,lte=5"`
	BonusAttempt              *int    `json:"bonus_attempt" validate:"omitempty,gte=0,lte=5"`
	BonusAnswerQuality        *int    `json:"bonus_answer_quality" validate:"omitempty,gte=0,lte=5"`
	BonusFollowUp             *int    `json:"bonus_follow_up" validate:"omitempty,gte=0,lte=5"`
	ExerciseSubmitted         *string `json:"exercise_submitted" validate:"omitempty,oneof=yes no"`
	ExerciseTestPassing       *string `json:"exercise_test_passing" validate:"omitempty,oneof=yes no"`
	ExerciseGoodDocumentation *string `json:"exercise_good_documentation" validate:"omitempty,oneof=yes no"`
	ExerciseGoodStructure     *string `json:"exercise_good_structure" validate:"omitempty,oneof=yes no"`
	Total                     *int    `json:"total"`
	Mail                      string  `json:"mail" validate:"required,email"`
	Week                      int     `json:"week" validate:"gte=0"`
}

// ToRecord normalizes a wire row into the internal record. Display names
// come back with underscores where the source data had spaces, so they are
// decoded here; the reverse direction never re-encodes them. The total is
// recomputed from the component scores, ignoring whatever the wire carried.
func ToRecord(w WeekRecordWire) models.WeekRecord {
	r := models.WeekRecord{
		Name:       DecodeName(w.Name),
		Email:      w.Mail,
		Group:      w.GroupID,
		TA:         models.TAUnassigned,
		Attendance: flagToBool(w.Attendance),
		Week:       w.Week,
		GD: models.GDScore{
			FA: intOrZero(w.FA),
			FB: intOrZero(w.FB),
			FC: intOrZero(w.FC),
			FD: intOrZero(w.FD),
		},
		Bonus: models.BonusScore{
			Attempt:  intOrZero(w.BonusAttempt),
			Good:     intOrZero(w.BonusAnswerQuality),
			FollowUp: intOrZero(w.BonusFollowUp),
		},
		Exercise: models.ExerciseScore{
			Submitted:       flagToBool(w.ExerciseSubmitted),
			PrivateTestPass: flagToBool(w.ExerciseTestPassing),
			GoodStructure:   flagToBool(w.ExerciseGoodStructure),
			GoodDoc:         flagToBool(w.ExerciseGoodDocumentation),
		},
	}
	if w.TA != nil && *w.TA != "" {
		r.TA = *w.TA
	}
	r.Total = score.Total(r.GD, r.Bonus, r.Exercise)
	return r
}

// FromRecord encodes an internal record back into the wire shape. The name
// is passed through untouched: decoding underscores is one-way. An
// unassigned TA is sent as an absent field rather than the sentinel.
func FromRecord(r models.WeekRecord) WeekRecordWire {
	w := WeekRecordWire{
		Name:                      r.Name,
		GroupID:                   r.Group,
		Attendance:                boolToFlag(r.Attendance),
		FA:                        intPtr(r.GD.FA),
		FB:                        intPtr(r.GD.FB),
		FC:                        intPtr(r.GD.FC),
		FD:                        intPtr(r.GD.FD),
		BonusAttempt:              intPtr(r.Bonus.Attempt),
		BonusAnswerQuality:        intPtr(r.Bonus.Good),
		BonusFollowUp:             intPtr(r.Bonus.FollowUp),
		ExerciseSubmitted:         boolToFlag(r.Exercise.Submitted),
		ExerciseTestPassing:       boolToFlag(r.Exercise.PrivateTestPass),
		ExerciseGoodDocumentation: boolToFlag(r.Exercise.GoodDoc),
		ExerciseGoodStructure:     boolToFlag(r.Exercise.GoodStructure),
		Total:                     intPtr(score.Total(r.GD, r.Bonus, r.Exercise)),
		Mail:                      r.Email,
		Week:                      r.Week,
	}
	if r.TA != "" && r.TA != models.TAUnassigned {
		ta := r.TA
		w.TA = &ta
	}
	return w
}

// ToRecords normalizes a full table, assigning sequential local IDs in
// arrival order.
func ToRecords(rows []WeekRecordWire) []models.WeekRecord {
	out := make([]models.WeekRecord, 0, len(rows))
	for i, row := range rows {
		r := ToRecord(row)
		r.ID = i
		out = append(out, r)
	}
	return out
}

// FromRecords encodes a slice of records into wire rows.
func FromRecords(records []models.WeekRecord) []WeekRecordWire {
	out := make([]WeekRecordWire, 0, len(records))
	for _, r := range records {
		out = append(out, FromRecord(r))
	}
	return out
}

// DecodeName converts the stored underscore form of a student name to its
// display form with spaces.
func DecodeName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}

func flagToBool(s *string) bool {
	return s != nil && *s == FlagYes
}

func boolToFlag(b bool) *string {
	f := FlagNo
	if b {
		f = FlagYes
	}
	return &f
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtr(v int) *int {
	return &v
}
