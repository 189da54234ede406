package roster

import (
	"sort"
	"strings"

	"github.com/Bitshala/admin/internal/models"
)

// Filter narrows a roster view. Zero values mean "no constraint"; the
// attendance filter is a pointer so "present only" and "absent only" are
// both expressible.
type Filter struct {
	Group      string
	TA         string
	Attendance *bool
	Search     string
}

// SortKey names a sortable roster column.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByGroup      SortKey = "group"
	SortByTA         SortKey = "ta"
	SortByAttendance SortKey = "attendance"
	SortByTotal      SortKey = "total"
)

// SortState is a single active sort column with a direction. Toggling the
// active column flips direction; picking a different column resets to
// ascending.
type SortState struct {
	Key        SortKey
	Descending bool
	active     bool
}

// Toggle updates the state for a click on the given column header.
func (s *SortState) Toggle(key SortKey) {
	if s.active && s.Key == key {
		s.Descending = !s.Descending
		return
	}
	s.Key = key
	s.Descending = false
	s.active = true
}

// Active reports whether any sort column is selected.
func (s *SortState) Active() bool {
	return s.active
}

// Apply projects the roster through the filter pipeline and then sorts.
// The pipeline order is fixed: group, TA, attendance, name search, sort.
// The input is never mutated and ties keep the order of the prior stage.
func Apply(rows []models.WeekRecord, f Filter, s SortState) []models.WeekRecord {
	out := make([]models.WeekRecord, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, r := range rows {
		if f.Group != "" && r.Group != f.Group {
			continue
		}
		if f.TA != "" && r.TA != f.TA {
			continue
		}
		if f.Attendance != nil && r.Attendance != *f.Attendance {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Name), search) {
			continue
		}
		out = append(out, r)
	}

	if !s.active {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if s.Descending {
			a, b = b, a
		}
		switch s.Key {
		case SortByName:
			return lessString(a.Name, b.Name)
		case SortByGroup:
			return lessString(a.Group, b.Group)
		case SortByTA:
			return lessString(a.TA, b.TA)
		case SortByAttendance:
			// True sorts before false on ascending.
			return a.Attendance && !b.Attendance
		case SortByTotal:
			return a.Total < b.Total
		}
		return false
	})
	return out
}

// GroupOptions returns the distinct group labels present in the roster,
// sorted for stable dropdown rendering.
func GroupOptions(rows []models.WeekRecord) []string {
	return distinct(rows, func(r models.WeekRecord) string { return r.Group })
}

// TAOptions returns the distinct TA labels present in the roster, sorted.
func TAOptions(rows []models.WeekRecord) []string {
	return distinct(rows, func(r models.WeekRecord) string { return r.TA })
}

func distinct(rows []models.WeekRecord, pick func(models.WeekRecord) string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		v := pick(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func lessString(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
