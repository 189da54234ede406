// Package roster holds the editable weekly roster: an in-memory session
// that reconciles local edits against the backend of record, and pure
// view projections over it (filtering, sorting, search, leaderboard
// ordering).
package roster

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/internal/score"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

// Backend is the record store a session reconciles against. Implementations
// translate to and from the wire format; the session only ever sees
// normalized records.
type Backend interface {
	FetchWeek(ctx context.Context, week int) ([]models.WeekRecord, error)
	UpsertWeek(ctx context.Context, week int, records []models.WeekRecord) error
	CreateRecord(ctx context.Context, record models.WeekRecord) error
	DeleteRecord(ctx context.Context, week int, record models.WeekRecord) error
}

// Mode is the table-level editing state.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "viewing"
}

// Field paths accepted by MutateField.
const (
	FieldAttendance      = "attendance"
	FieldGDFA            = "gdScore.fa"
	FieldGDFB            = "gdScore.fb"
	FieldGDFC            = "gdScore.fc"
	FieldGDFD            = "gdScore.fd"
	FieldBonusAttempt    = "bonusScore.attempt"
	FieldBonusGood       = "bonusScore.good"
	FieldBonusFollowUp   = "bonusScore.followUp"
	FieldExSubmitted     = "exerciseScore.submitted"
	FieldExTestPass      = "exerciseScore.privateTestPass"
	FieldExGoodStructure = "exerciseScore.goodStructure"
	FieldExGoodDoc       = "exerciseScore.goodDoc"
)

// Session holds one week's roster together with the set of rows mutated
// since the last save. Any field mutation switches the session to Editing;
// a successful save or a week switch returns it to Viewing. Edits pending
// at week-switch time are discarded, not flushed.
//
// Saves overwrite the backend's copy of every dirty row wholesale. There
// is no merge against concurrent writers; a roster is edited by a single
// operator at a time.
type Session struct {
	backend Backend

	mu    sync.Mutex
	week  int
	rows  []models.WeekRecord
	dirty map[int]struct{}
	mode  Mode
	epoch uint64
}

// NewSession returns an empty session in Viewing mode. Call Load to
// populate it.
func NewSession(backend Backend) *Session {
	return &Session{
		backend: backend,
		dirty:   map[int]struct{}{},
	}
}

// Load fetches the roster for week and replaces the session's contents.
// A response that arrives after a later Load or SwitchWeek has been
// issued is stale and gets dropped instead of overwriting the newer view.
func (s *Session) Load(ctx context.Context, week int) error {
	s.mu.Lock()
	s.epoch++
	issued := s.epoch
	s.week = week
	s.mu.Unlock()

	rows, err := s.backend.FetchWeek(ctx, week)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != issued {
		return nil
	}
	for i := range rows {
		rows[i].ID = i
	}
	s.rows = rows
	s.dirty = map[int]struct{}{}
	s.mode = Viewing
	return nil
}

// Week returns the week currently loaded.
func (s *Session) Week() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week
}

// Mode returns the current table mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Rows returns a copy of the roster in its stable fetch order.
func (s *Session) Rows() []models.WeekRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WeekRecord, len(s.rows))
	copy(out, s.rows)
	return out
}

// DirtyIDs returns the ids of locally mutated rows in ascending order.
func (s *Session) DirtyIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.dirty))
	for id := range s.dirty {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// MutateField applies a single field edit to the row with the given id,
// recomputes the row's total and marks it dirty. Numeric values that fail
// to parse normalize to 0 and sub-scores clamp to [0,5]. An unknown row
// id is a silent no-op. Score fields of the baseline week are immutable.
//
// Every field follows the same gating rule: mutation is always permitted
// and switches the table to Editing.
func (s *Session) MutateField(id int, path, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.rows {
		if s.rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	row := s.rows[idx]
	if row.Week == models.BaselineWeek && path != FieldAttendance {
		return appErrors.Clone(appErrors.ErrValidation, "baseline week scores are read-only")
	}

	switch path {
	case FieldAttendance:
		row.Attendance = parseFlag(value)
	case FieldGDFA:
		row.GD.FA = parseSubScore(value)
	case FieldGDFB:
		row.GD.FB = parseSubScore(value)
	case FieldGDFC:
		row.GD.FC = parseSubScore(value)
	case FieldGDFD:
		row.GD.FD = parseSubScore(value)
	case FieldBonusAttempt:
		row.Bonus.Attempt = parseSubScore(value)
	case FieldBonusGood:
		row.Bonus.Good = parseSubScore(value)
	case FieldBonusFollowUp:
		row.Bonus.FollowUp = parseSubScore(value)
	case FieldExSubmitted:
		row.Exercise.Submitted = parseFlag(value)
	case FieldExTestPass:
		row.Exercise.PrivateTestPass = parseFlag(value)
	case FieldExGoodStructure:
		row.Exercise.GoodStructure = parseFlag(value)
	case FieldExGoodDoc:
		row.Exercise.GoodDoc = parseFlag(value)
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown field path: "+path)
	}

	row.Total = score.Total(row.GD, row.Bonus, row.Exercise)
	s.rows[idx] = row
	s.dirty[id] = struct{}{}
	s.mode = Editing
	return nil
}

// AddRow creates a record for the current week out of band and re-fetches
// the roster afterwards. The backend assigns canonical state; the session
// never splices the draft in locally.
func (s *Session) AddRow(ctx context.Context, draft models.WeekRecord) error {
	if strings.TrimSpace(draft.Name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}

	s.mu.Lock()
	week := s.week
	s.mu.Unlock()

	draft.Week = week
	if draft.TA == "" {
		draft.TA = models.TAUnassigned
	}
	draft.Total = score.Total(draft.GD, draft.Bonus, draft.Exercise)

	if err := s.backend.CreateRecord(ctx, draft); err != nil {
		return err
	}
	return s.Load(ctx, week)
}

// DeleteRow removes the row from the backend and, on success, from the
// local roster. A failed delete leaves the roster untouched.
func (s *Session) DeleteRow(ctx context.Context, id int) error {
	s.mu.Lock()
	idx := -1
	for i := range s.rows {
		if s.rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "row not found")
	}
	row := s.rows[idx]
	week := s.week
	s.mu.Unlock()

	if err := s.backend.DeleteRecord(ctx, week, row); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			break
		}
	}
	delete(s.dirty, id)
	return nil
}

// Save flushes every dirty row to the backend as one bulk upsert. On
// success the dirty set is cleared and the table returns to Viewing; on
// failure both survive so the operator can retry.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	week := s.week
	batch := make([]models.WeekRecord, 0, len(s.dirty))
	for _, row := range s.rows {
		if _, ok := s.dirty[row.ID]; ok {
			batch = append(batch, row)
		}
	}
	s.mu.Unlock()

	if len(batch) == 0 {
		s.mu.Lock()
		s.mode = Viewing
		s.mu.Unlock()
		return nil
	}

	if err := s.backend.UpsertWeek(ctx, week, batch); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = map[int]struct{}{}
	s.mode = Viewing
	return nil
}

// SwitchWeek discards any pending edits and loads the new week. The
// discard is deliberate: a week switch is a hard reset, not a flush.
func (s *Session) SwitchWeek(ctx context.Context, week int) error {
	s.mu.Lock()
	s.dirty = map[int]struct{}{}
	s.mode = Viewing
	s.mu.Unlock()
	return s.Load(ctx, week)
}

func parseSubScore(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	if n < 0 {
		return 0
	}
	if n > 5 {
		return 5
	}
	return n
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
