package roster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitshala/admin/internal/models"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

type mockBackend struct {
	weeks    map[int][]models.WeekRecord
	fetchErr error
	saveErr  error
	onFetch  func(week int)

	upserted  map[int][]models.WeekRecord
	created   []models.WeekRecord
	deleted   []models.WeekRecord
	createErr error
	deleteErr error
}

func (m *mockBackend) FetchWeek(ctx context.Context, week int) ([]models.WeekRecord, error) {
	if m.onFetch != nil {
		m.onFetch(week)
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	rows := make([]models.WeekRecord, len(m.weeks[week]))
	copy(rows, m.weeks[week])
	return rows, nil
}

func (m *mockBackend) UpsertWeek(ctx context.Context, week int, records []models.WeekRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.upserted == nil {
		m.upserted = map[int][]models.WeekRecord{}
	}
	m.upserted[week] = append(m.upserted[week], records...)
	return nil
}

func (m *mockBackend) CreateRecord(ctx context.Context, record models.WeekRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, record)
	m.weeks[record.Week] = append(m.weeks[record.Week], record)
	return nil
}

func (m *mockBackend) DeleteRecord(ctx context.Context, week int, record models.WeekRecord) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, record)
	return nil
}

func twoRowWeek() *mockBackend {
	return &mockBackend{
		weeks: map[int][]models.WeekRecord{
			1: {
				{Name: "Alice", Email: "alice@example.com", Group: "Group 1", TA: "Raj", Week: 1,
					GD: models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}, Total: 100},
				{Name: "Bob", Email: "bob@example.com", Group: "Group 2", TA: "Setu", Week: 1},
			},
		},
	}
}

func TestSessionLoadAssignsIDsInFetchOrder(t *testing.T) {
	s := NewSession(twoRowWeek())
	require.NoError(t, s.Load(context.Background(), 1))

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].ID)
	assert.Equal(t, 1, rows[1].ID)
	assert.Equal(t, Viewing, s.Mode())
	assert.Empty(t, s.DirtyIDs())
}

func TestSessionMutateField(t *testing.T) {
	s := NewSession(twoRowWeek())
	require.NoError(t, s.Load(context.Background(), 1))

	require.NoError(t, s.MutateField(0, FieldGDFA, "3"))

	rows := s.Rows()
	assert.Equal(t, 3, rows[0].GD.FA)
	assert.Equal(t, 88, rows[0].Total)
	assert.Equal(t, models.WeekRecord{Name: "Bob", Email: "bob@example.com", Group: "Group 2", TA: "Setu", Week: 1, ID: 1}, rows[1])
	assert.Equal(t, []int{0}, s.DirtyIDs())
	assert.Equal(t, Editing, s.Mode())
}

func TestSessionMutateFieldUnknownIDIsNoOp(t *testing.T) {
	s := NewSession(twoRowWeek())
	require.NoError(t, s.Load(context.Background(), 1))

	require.NoError(t, s.MutateField(42, FieldGDFA, "3"))
	assert.Len(t, s.Rows(), 2)
	assert.Empty(t, s.DirtyIDs())
	assert.Equal(t, Viewing, s.Mode())
}

func TestSessionMutateFieldParsing(t *testing.T) {
	s := NewSession(twoRowWeek())
	require.NoError(t, s.Load(context.Background(), 1))

	// Non-numeric normalizes to 0, out-of-range clamps.
	require.NoError(t, s.MutateField(0, FieldGDFA, "abc"))
	assert.Equal(t, 0, s.Rows()[0].GD.FA)
	require.NoError(t, s.MutateField(0, FieldGDFB, "9"))
	assert.Equal(t, 5, s.Rows()[0].GD.FB)
	require.NoError(t, s.MutateField(0, FieldExSubmitted, "yes"))
	assert.True(t, s.Rows()[0].Exercise.Submitted)
	require.NoError(t, s.MutateField(0, FieldAttendance, "no"))
	assert.False(t, s.Rows()[0].Attendance)

	err := s.MutateField(0, "gdScore.fe", "1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSessionBaselineWeekScoresAreReadOnly(t *testing.T) {
	b := &mockBackend{weeks: map[int][]models.WeekRecord{
		0: {{Name: "Alice", Group: "Group 1", TA: "Raj", Week: 0}},
	}}
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 0))

	err := s.MutateField(0, FieldGDFA, "5")
	require.Error(t, err)
	assert.Empty(t, s.DirtyIDs())

	// Attendance stays editable on the baseline roster.
	require.NoError(t, s.MutateField(0, FieldAttendance, "yes"))
	assert.True(t, s.Rows()[0].Attendance)
}

func TestSessionSaveFlushesOnlyDirtyRows(t *testing.T) {
	b := twoRowWeek()
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))

	require.NoError(t, s.MutateField(1, FieldBonusAttempt, "2"))
	require.NoError(t, s.Save(context.Background()))

	require.Len(t, b.upserted[1], 1)
	assert.Equal(t, "Bob", b.upserted[1][0].Name)
	assert.Equal(t, 20, b.upserted[1][0].Total)
	assert.Empty(t, s.DirtyIDs())
	assert.Equal(t, Viewing, s.Mode())
}

func TestSessionSaveFailurePreservesDirtySet(t *testing.T) {
	b := twoRowWeek()
	b.saveErr = errors.New("connection reset")
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))

	require.NoError(t, s.MutateField(0, FieldGDFA, "1"))
	require.Error(t, s.Save(context.Background()))

	assert.Equal(t, []int{0}, s.DirtyIDs())
	assert.Equal(t, Editing, s.Mode())
}

func TestSessionSaveWithNoEditsSkipsBackend(t *testing.T) {
	b := twoRowWeek()
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))
	require.NoError(t, s.Save(context.Background()))
	assert.Empty(t, b.upserted)
}

func TestSessionSwitchWeekDiscardsEdits(t *testing.T) {
	b := twoRowWeek()
	b.weeks[2] = []models.WeekRecord{{Name: "Carol", Group: "Group 1", TA: "Raj", Week: 2}}
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))
	require.NoError(t, s.MutateField(0, FieldGDFA, "1"))

	require.NoError(t, s.SwitchWeek(context.Background(), 2))

	assert.Empty(t, s.DirtyIDs())
	assert.Equal(t, Viewing, s.Mode())
	assert.Empty(t, b.upserted)
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Carol", rows[0].Name)
}

func TestSessionAddRow(t *testing.T) {
	b := twoRowWeek()
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))

	err := s.AddRow(context.Background(), models.WeekRecord{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	draft := models.WeekRecord{
		Name:  "Dave",
		Email: "dave@example.com",
		Group: "Group 3",
		GD:    models.GDScore{FA: 1},
	}
	require.NoError(t, s.AddRow(context.Background(), draft))

	require.Len(t, b.created, 1)
	assert.Equal(t, 1, b.created[0].Week)
	assert.Equal(t, models.TAUnassigned, b.created[0].TA)
	assert.Equal(t, 6, b.created[0].Total)

	// The roster reflects the re-fetch, not a local splice.
	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Dave", rows[2].Name)
	assert.Equal(t, 2, rows[2].ID)
}

func TestSessionDeleteRow(t *testing.T) {
	b := twoRowWeek()
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))

	require.NoError(t, s.DeleteRow(context.Background(), 0))
	require.Len(t, b.deleted, 1)
	assert.Equal(t, "Alice", b.deleted[0].Name)
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Bob", rows[0].Name)

	err := s.DeleteRow(context.Background(), 99)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSessionDeleteRowFailureKeepsRow(t *testing.T) {
	b := twoRowWeek()
	b.deleteErr = errors.New("boom")
	s := NewSession(b)
	require.NoError(t, s.Load(context.Background(), 1))

	require.Error(t, s.DeleteRow(context.Background(), 0))
	assert.Len(t, s.Rows(), 2)
}

func TestSessionStaleLoadIsDiscarded(t *testing.T) {
	b := twoRowWeek()
	b.weeks[2] = []models.WeekRecord{{Name: "Carol", Group: "Group 1", TA: "Raj", Week: 2}}

	s := NewSession(b)

	// While the week-1 fetch is in flight the user switches to week 2.
	// The late week-1 response must not overwrite the week-2 view.
	fired := false
	b.onFetch = func(week int) {
		if week == 1 && !fired {
			fired = true
			require.NoError(t, s.SwitchWeek(context.Background(), 2))
		}
	}
	require.NoError(t, s.Load(context.Background(), 1))

	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Carol", rows[0].Name)
	assert.Equal(t, 2, s.Week())
}
