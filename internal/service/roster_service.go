package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/internal/score"
	"github.com/Bitshala/admin/pkg/config"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

// WeekRecordStore abstracts week record persistence.
type WeekRecordStore interface {
	ListByWeek(ctx context.Context, week int) ([]models.WeekRecord, error)
	BulkUpsert(ctx context.Context, records []models.WeekRecord) error
	Delete(ctx context.Context, week int, name, mail string) (int64, error)
	AttendanceCount(ctx context.Context, week int) (int, error)
	StudentCount(ctx context.Context) (int, error)
}

// SubmissionReader looks up exercise submission links.
type SubmissionReader interface {
	FindLink(ctx context.Context, week int, name string) (string, error)
}

// RosterService owns week rosters: reading them, seeding a fresh week
// from its predecessor, and applying bulk edits.
type RosterService struct {
	records     WeekRecordStore
	submissions SubmissionReader
	cache       *CacheService
	metrics     *MetricsService
	cohort      config.CohortConfig
	logger      *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(records WeekRecordStore, submissions SubmissionReader, cache *CacheService, metrics *MetricsService, cohort config.CohortConfig, logger *zap.Logger) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{records: records, submissions: submissions, cache: cache, metrics: metrics, cohort: cohort, logger: logger}
}

// GetWeek returns the roster for a week. Opening a week at or past 1
// regenerates it from the previous week: attendees are dealt into fresh
// discussion groups with a rotating TA, absentees move to the catch-up
// group, and any scores already entered for the week are preserved.
func (s *RosterService) GetWeek(ctx context.Context, week int) ([]models.WeekRecord, error) {
	if err := s.checkWeek(week); err != nil {
		return nil, err
	}
	stored, err := s.records.ListByWeek(ctx, week)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week roster")
	}
	if week == models.BaselineWeek {
		return stored, nil
	}

	prev, err := s.records.ListByWeek(ctx, week-1)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load previous week")
	}
	if len(prev) == 0 {
		return stored, nil
	}

	seeded, changed := s.seedWeek(ctx, week, prev, stored)
	if changed {
		if err := s.records.BulkUpsert(ctx, seeded); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist seeded roster")
		}
		s.metrics.RecordRosterSeed()
		s.invalidate(ctx)
		s.logger.Info("seeded week roster", zap.Int("week", week), zap.Int("rows", len(seeded)))
	}
	return seeded, nil
}

// seedWeek builds week rows from the previous week's roster, overlaying
// any rows already stored for the target week so entered scores survive a
// re-open.
func (s *RosterService) seedWeek(ctx context.Context, week int, prev, stored []models.WeekRecord) ([]models.WeekRecord, bool) {
	existing := make(map[string]models.WeekRecord, len(stored))
	for _, r := range stored {
		existing[r.Name] = r
	}

	// Strongest performers first so groups fill in rank order.
	sort.SliceStable(prev, func(i, j int) bool {
		if prev[i].Attendance != prev[j].Attendance {
			return prev[i].Attendance
		}
		if prev[i].Total != prev[j].Total {
			return prev[i].Total > prev[j].Total
		}
		return prev[i].Name > prev[j].Name
	})

	size := s.cohort.GroupSize
	if size <= 0 {
		size = 1
	}
	tas := s.rotationTAs()
	groups := s.cohort.GroupCount
	if groups <= 0 {
		groups = len(tas)
	}
	groupCap := size * groups
	groupIdx := -1
	changed := false

	out := make([]models.WeekRecord, 0, len(prev))
	for index, row := range prev {
		if row.Attendance {
			if len(tas) > 0 && groups > 0 {
				if index < groupCap {
					if index%size == 0 {
						groupIdx++
					}
				} else {
					groupIdx++
				}
				slot := groupIdx % groups
				row.Group = fmt.Sprintf("Group %d", slot+1)
				// Rotate TA assignment weekly so no group keeps the
				// same TA for the whole cohort.
				row.TA = tas[(slot+week-1)%len(tas)]
			}
		} else {
			row.Group = s.cohort.CatchUpGroup
			row.TA = s.cohort.CatchUpTA
		}
		row.Week = week

		if prior, ok := existing[row.Name]; ok {
			row.Attendance = prior.Attendance
			row.GD = prior.GD
			row.Bonus = prior.Bonus
			row.Exercise = prior.Exercise
		} else {
			changed = true
			row.Attendance = false
			row.GD = models.GDScore{}
			row.Bonus = models.BonusScore{}
			row.Exercise = models.ExerciseScore{}
		}

		if s.submissions != nil && !row.Exercise.Submitted {
			if _, err := s.submissions.FindLink(ctx, week, row.Name); err == nil {
				row.Exercise.Submitted = true
				changed = true
			}
		}

		row.Total = score.Total(row.GD, row.Bonus, row.Exercise)
		out = append(out, row)
	}
	return out, changed
}

func (s *RosterService) rotationTAs() []string {
	tas := make([]string, 0, len(s.cohort.DiscussionTAs))
	for _, ta := range s.cohort.DiscussionTAs {
		if ta != s.cohort.CatchUpTA {
			tas = append(tas, ta)
		}
	}
	return tas
}

// UpsertWeek overwrites the given rows for one week. Totals are always
// recomputed server-side; a client-supplied total is never trusted.
func (s *RosterService) UpsertWeek(ctx context.Context, week int, records []models.WeekRecord) error {
	if err := s.checkWeek(week); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if strings.TrimSpace(records[i].Name) == "" {
			return appErrors.Clone(appErrors.ErrValidation, "record name is required")
		}
		records[i].Week = week
		if records[i].TA == "" {
			records[i].TA = models.TAUnassigned
		}
		records[i].Total = score.Total(records[i].GD, records[i].Bonus, records[i].Exercise)
	}
	if err := s.records.BulkUpsert(ctx, records); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save week roster")
	}
	s.invalidate(ctx)
	return nil
}

// DeleteRecord removes one student's row from one week.
func (s *RosterService) DeleteRecord(ctx context.Context, week int, name, mail string) error {
	n, err := s.records.Delete(ctx, week, name, mail)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete record")
	}
	if n == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "record not found")
	}
	s.invalidate(ctx)
	return nil
}

// WeeklyAttendance reports how many students attended a week.
func (s *RosterService) WeeklyAttendance(ctx context.Context, week int) (*models.WeeklyAttendance, error) {
	count, err := s.records.AttendanceCount(ctx, week)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}
	return &models.WeeklyAttendance{Week: week, Attended: count}, nil
}

// StudentCount returns the number of distinct students on the roster.
func (s *RosterService) StudentCount(ctx context.Context) (int, error) {
	var count int
	if hit, _ := s.cache.Get(ctx, cacheKeyStudentCount, &count); hit {
		return count, nil
	}
	count, err := s.records.StudentCount(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	_ = s.cache.Set(ctx, cacheKeyStudentCount, count, 0)
	return count, nil
}

// checkWeek rejects weeks past the cohort's configured length. A zero
// TotalWeeks disables the bound.
func (s *RosterService) checkWeek(week int) error {
	if s.cohort.TotalWeeks > 0 && week > s.cohort.TotalWeeks {
		return appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("week %d is beyond the %d-week cohort", week, s.cohort.TotalWeeks))
	}
	return nil
}

func (s *RosterService) invalidate(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, cachePatternRoster)
}
