package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/pkg/config"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

type mockWeekStore struct {
	weeks    map[int][]models.WeekRecord
	upserted []models.WeekRecord
	deleted  int64
}

func (m *mockWeekStore) ListByWeek(ctx context.Context, week int) ([]models.WeekRecord, error) {
	rows := make([]models.WeekRecord, len(m.weeks[week]))
	copy(rows, m.weeks[week])
	return rows, nil
}

func (m *mockWeekStore) BulkUpsert(ctx context.Context, records []models.WeekRecord) error {
	m.upserted = append(m.upserted, records...)
	return nil
}

func (m *mockWeekStore) Delete(ctx context.Context, week int, name, mail string) (int64, error) {
	return m.deleted, nil
}

func (m *mockWeekStore) AttendanceCount(ctx context.Context, week int) (int, error) {
	count := 0
	for _, r := range m.weeks[week] {
		if r.Attendance {
			count++
		}
	}
	return count, nil
}

func (m *mockWeekStore) StudentCount(ctx context.Context) (int, error) {
	names := map[string]struct{}{}
	for _, rows := range m.weeks {
		for _, r := range rows {
			names[r.Name] = struct{}{}
		}
	}
	return len(names), nil
}

type mockSubmissions struct {
	links map[string]string
}

func (m *mockSubmissions) FindLink(ctx context.Context, week int, name string) (string, error) {
	if url, ok := m.links[fmt.Sprintf("%d/%s", week, name)]; ok {
		return url, nil
	}
	return "", fmt.Errorf("find submission link: %w", sql.ErrNoRows)
}

func testCohort() config.CohortConfig {
	return config.CohortConfig{
		TotalWeeks:    6,
		GroupSize:     2,
		CatchUpGroup:  "Group 6",
		CatchUpTA:     "Setu",
		DiscussionTAs: []string{"Raj", "Bala"},
	}
}

func newRosterService(store *mockWeekStore, subs SubmissionReader) *RosterService {
	cache := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	return NewRosterService(store, subs, cache, nil, testCohort(), zap.NewNop())
}

func TestRosterServiceGetWeekBaselinePassesThrough(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		0: {{Name: "Alice", Group: "Group 1", Week: 0}},
	}}
	svc := newRosterService(store, &mockSubmissions{})

	rows, err := svc.GetWeek(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, store.upserted)
}

func TestRosterServiceGetWeekSeedsFromPreviousWeek(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		1: {
			{Name: "Alice", Week: 1, Attendance: true, Total: 150},
			{Name: "Bob", Week: 1, Attendance: true, Total: 120},
			{Name: "Carol", Week: 1, Attendance: true, Total: 90},
			{Name: "Dave", Week: 1, Attendance: false, Total: 0},
		},
	}}
	svc := newRosterService(store, &mockSubmissions{})

	rows, err := svc.GetWeek(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byName := map[string]models.WeekRecord{}
	for _, r := range rows {
		assert.Equal(t, 2, r.Week)
		byName[r.Name] = r
	}

	// Attendees fill groups of two in rank order; the TA rotation for
	// week 2 shifts every group's TA by one.
	assert.Equal(t, "Group 1", byName["Alice"].Group)
	assert.Equal(t, "Group 1", byName["Bob"].Group)
	assert.Equal(t, "Group 2", byName["Carol"].Group)
	assert.Equal(t, "Bala", byName["Alice"].TA)
	assert.Equal(t, "Raj", byName["Carol"].TA)

	// Absentees park in the catch-up group.
	assert.Equal(t, "Group 6", byName["Dave"].Group)
	assert.Equal(t, "Setu", byName["Dave"].TA)

	// Seeded rows start from a clean slate.
	for _, r := range rows {
		assert.False(t, r.Attendance)
		assert.Zero(t, r.Total)
	}
	assert.Len(t, store.upserted, 4)
}

func TestRosterServiceGetWeekPreservesEnteredScores(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		1: {
			{Name: "Alice", Week: 1, Attendance: true, Total: 100},
			{Name: "Bob", Week: 1, Attendance: true, Total: 50},
		},
		2: {
			{Name: "Alice", Week: 2, Attendance: true,
				GD: models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}, Total: 100},
		},
	}}
	svc := newRosterService(store, &mockSubmissions{})

	rows, err := svc.GetWeek(context.Background(), 2)
	require.NoError(t, err)

	byName := map[string]models.WeekRecord{}
	for _, r := range rows {
		byName[r.Name] = r
	}
	assert.True(t, byName["Alice"].Attendance)
	assert.Equal(t, 100, byName["Alice"].Total)
	assert.False(t, byName["Bob"].Attendance)
}

func TestRosterServiceGetWeekMarksSubmittedExercises(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		1: {{Name: "Alice", Week: 1, Attendance: true}},
	}}
	subs := &mockSubmissions{links: map[string]string{"2/Alice": "https://github.com/alice/week2"}}
	svc := newRosterService(store, subs)

	rows, err := svc.GetWeek(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Exercise.Submitted)
	assert.Equal(t, 10, rows[0].Total)
}

func TestRosterServiceGetWeekNoPreviousDataReturnsStored(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{}}
	svc := newRosterService(store, &mockSubmissions{})

	rows, err := svc.GetWeek(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Empty(t, store.upserted)
}

func TestRosterServiceRejectsWeekBeyondCohort(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{}}
	svc := newRosterService(store, &mockSubmissions{})

	_, err := svc.GetWeek(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	err = svc.UpsertWeek(context.Background(), 7, []models.WeekRecord{{Name: "Alice"}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, store.upserted)
}

func TestRosterServiceSeedHonorsGroupCount(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		1: {
			{Name: "Alice", Week: 1, Attendance: true, Total: 150},
			{Name: "Bob", Week: 1, Attendance: true, Total: 120},
			{Name: "Carol", Week: 1, Attendance: true, Total: 90},
			{Name: "Dave", Week: 1, Attendance: true, Total: 60},
		},
	}}
	cohort := testCohort()
	cohort.GroupSize = 1
	cohort.GroupCount = 2
	cache := NewCacheService(nil, nil, 0, zap.NewNop(), false)
	svc := NewRosterService(store, &mockSubmissions{}, cache, nil, cohort, zap.NewNop())

	rows, err := svc.GetWeek(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	byName := map[string]models.WeekRecord{}
	for _, r := range rows {
		byName[r.Name] = r
	}

	// Two groups of one in rank order; overflow past the cap cycles
	// through the same group slots one row at a time.
	assert.Equal(t, "Group 1", byName["Alice"].Group)
	assert.Equal(t, "Group 2", byName["Bob"].Group)
	assert.Equal(t, "Group 1", byName["Carol"].Group)
	assert.Equal(t, "Group 2", byName["Dave"].Group)
	assert.Equal(t, "Bala", byName["Alice"].TA)
	assert.Equal(t, "Raj", byName["Bob"].TA)
}

func TestRosterServiceUpsertWeek(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{}}
	svc := newRosterService(store, &mockSubmissions{})

	err := svc.UpsertWeek(context.Background(), 2, []models.WeekRecord{
		{Name: "Alice", GD: models.GDScore{FA: 5, FB: 5, FC: 5, FD: 5}, Total: 9999},
	})
	require.NoError(t, err)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, 2, store.upserted[0].Week)
	assert.Equal(t, models.TAUnassigned, store.upserted[0].TA)
	// The client-supplied total is discarded.
	assert.Equal(t, 100, store.upserted[0].Total)
}

func TestRosterServiceUpsertWeekRejectsBlankName(t *testing.T) {
	svc := newRosterService(&mockWeekStore{weeks: map[int][]models.WeekRecord{}}, &mockSubmissions{})

	err := svc.UpsertWeek(context.Background(), 2, []models.WeekRecord{{Name: "   "}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceDeleteRecord(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{}, deleted: 1}
	svc := newRosterService(store, &mockSubmissions{})
	require.NoError(t, svc.DeleteRecord(context.Background(), 2, "Alice", "alice@example.com"))

	store.deleted = 0
	err := svc.DeleteRecord(context.Background(), 2, "Ghost", "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRosterServiceWeeklyAttendance(t *testing.T) {
	store := &mockWeekStore{weeks: map[int][]models.WeekRecord{
		3: {
			{Name: "Alice", Week: 3, Attendance: true},
			{Name: "Bob", Week: 3, Attendance: false},
			{Name: "Carol", Week: 3, Attendance: true},
		},
	}}
	svc := newRosterService(store, &mockSubmissions{})

	att, err := svc.WeeklyAttendance(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, &models.WeeklyAttendance{Week: 3, Attended: 2}, att)
}
