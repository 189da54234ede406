package models

// WeeklyStats summarises a student's performance across all scored weeks
// (the baseline week is excluded before computation). Percentages are
// unrounded; presentation rounding is a client concern.
type WeeklyStats struct {
	TotalWeeks        int     `json:"total_weeks"`
	AttendedWeeks     int     `json:"attended_weeks"`
	TotalScore        int     `json:"total_score"`
	AvgScore          float64 `json:"avg_score"`
	MaxPossibleScore  int     `json:"max_possible_score"`
	OverallPercentage float64 `json:"overall_percentage"`
	AttendanceRate    float64 `json:"attendance_rate"`
}

// StudentProfile is the detail view of one student: identity from the most
// recent week, the full per-week history and derived statistics.
type StudentProfile struct {
	Name  string       `json:"name"`
	Email string       `json:"email,omitempty"`
	Group string       `json:"group"`
	TA    string       `json:"ta"`
	Weeks []WeekRecord `json:"weeks"`
	Stats WeeklyStats  `json:"stats"`
}

// StudentBackground carries the self-reported bio fields collected at
// registration. Fetched independently of scoring and optional throughout.
type StudentBackground struct {
	DescribeYourself string `json:"describe_yourself" db:"describe_yourself"`
	Background       string `json:"background" db:"background"`
	Skills           string `json:"skills" db:"skills"`
	Location         string `json:"location" db:"location"`
	Why              string `json:"why" db:"why"`
	Year             string `json:"year" db:"year"`
	Books            string `json:"books" db:"books"`
}

// SubmissionLink points to a student's exercise repository for one week.
type SubmissionLink struct {
	URL string `json:"url"`
}
