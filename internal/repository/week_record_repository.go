package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Bitshala/admin/internal/models"
)

// weekRecordRow is the flat database shape of a week record. The nested
// score structs flatten into one column per sub-score; totals are stored
// denormalized for cheap aggregation.
type weekRecordRow struct {
	Name              string    `db:"name"`
	Mail              string    `db:"mail"`
	GroupName         string    `db:"group_name"`
	TA                string    `db:"ta"`
	Attendance        bool      `db:"attendance"`
	Week              int       `db:"week"`
	FA                int       `db:"fa"`
	FB                int       `db:"fb"`
	FC                int       `db:"fc"`
	FD                int       `db:"fd"`
	BonusAttempt      int       `db:"bonus_attempt"`
	BonusGood         int       `db:"bonus_good"`
	BonusFollowUp     int       `db:"bonus_follow_up"`
	ExerciseSubmitted bool      `db:"exercise_submitted"`
	ExerciseTestPass  bool      `db:"exercise_test_pass"`
	ExerciseStructure bool      `db:"exercise_good_structure"`
	ExerciseDoc       bool      `db:"exercise_good_doc"`
	Total             int       `db:"total"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r weekRecordRow) toModel() models.WeekRecord {
	return models.WeekRecord{
		Name:       r.Name,
		Email:      r.Mail,
		Group:      r.GroupName,
		TA:         r.TA,
		Attendance: r.Attendance,
		Week:       r.Week,
		GD:         models.GDScore{FA: r.FA, FB: r.FB, FC: r.FC, FD: r.FD},
		Bonus:      models.BonusScore{Attempt: r.BonusAttempt, Good: r.BonusGood, FollowUp: r.BonusFollowUp},
		Exercise: models.ExerciseScore{
			Submitted:       r.ExerciseSubmitted,
			PrivateTestPass: r.ExerciseTestPass,
			GoodStructure:   r.ExerciseStructure,
			GoodDoc:         r.ExerciseDoc,
		},
		Total: r.Total,
	}
}

func toRow(m models.WeekRecord) weekRecordRow {
	return weekRecordRow{
		Name:              m.Name,
		Mail:              m.Email,
		GroupName:         m.Group,
		TA:                m.TA,
		Attendance:        m.Attendance,
		Week:              m.Week,
		FA:                m.GD.FA,
		FB:                m.GD.FB,
		FC:                m.GD.FC,
		FD:                m.GD.FD,
		BonusAttempt:      m.Bonus.Attempt,
		BonusGood:         m.Bonus.Good,
		BonusFollowUp:     m.Bonus.FollowUp,
		ExerciseSubmitted: m.Exercise.Submitted,
		ExerciseTestPass:  m.Exercise.PrivateTestPass,
		ExerciseStructure: m.Exercise.GoodStructure,
		ExerciseDoc:       m.Exercise.GoodDoc,
		Total:             m.Total,
	}
}

const weekRecordColumns = `name, mail, group_name, ta, attendance, week,
        fa, fb, fc, fd, bonus_attempt, bonus_good, bonus_follow_up,
        exercise_submitted, exercise_test_pass, exercise_good_structure, exercise_good_doc,
        total, created_at, updated_at`

// WeekRecordRepository handles week record persistence.
type WeekRecordRepository struct {
	db *sqlx.DB
}

// NewWeekRecordRepository creates a new week record repository.
func NewWeekRecordRepository(db *sqlx.DB) *WeekRecordRepository {
	return &WeekRecordRepository{db: db}
}

// ListByWeek returns every record for one week ordered by group then name.
func (r *WeekRecordRepository) ListByWeek(ctx context.Context, week int) ([]models.WeekRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM week_records WHERE week = $1 ORDER BY group_name, name`, weekRecordColumns)
	var rows []weekRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, week); err != nil {
		return nil, fmt.Errorf("list week records: %w", err)
	}
	out := make([]models.WeekRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

// ListByName returns all weeks for one student ordered by week.
func (r *WeekRecordRepository) ListByName(ctx context.Context, name string) ([]models.WeekRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM week_records WHERE name = $1 ORDER BY week`, weekRecordColumns)
	var rows []weekRecordRow
	if err := r.db.SelectContext(ctx, &rows, query, name); err != nil {
		return nil, fmt.Errorf("list student records: %w", err)
	}
	out := make([]models.WeekRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toModel()
	}
	return out, nil
}

// BulkUpsert inserts or updates the given records in one transaction.
// Rows are keyed by (name, week); an existing row is overwritten wholesale.
func (r *WeekRecordRepository) BulkUpsert(ctx context.Context, records []models.WeekRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	const query = `INSERT INTO week_records (name, mail, group_name, ta, attendance, week,
                fa, fb, fc, fd, bonus_attempt, bonus_good, bonus_follow_up,
                exercise_submitted, exercise_test_pass, exercise_good_structure, exercise_good_doc,
                total, created_at, updated_at)
        VALUES (:name, :mail, :group_name, :ta, :attendance, :week,
                :fa, :fb, :fc, :fd, :bonus_attempt, :bonus_good, :bonus_follow_up,
                :exercise_submitted, :exercise_test_pass, :exercise_good_structure, :exercise_good_doc,
                :total, :created_at, :updated_at)
        ON CONFLICT (name, week)
        DO UPDATE SET mail = EXCLUDED.mail, group_name = EXCLUDED.group_name, ta = EXCLUDED.ta,
                attendance = EXCLUDED.attendance,
                fa = EXCLUDED.fa, fb = EXCLUDED.fb, fc = EXCLUDED.fc, fd = EXCLUDED.fd,
                bonus_attempt = EXCLUDED.bonus_attempt, bonus_good = EXCLUDED.bonus_good,
                bonus_follow_up = EXCLUDED.bonus_follow_up,
                exercise_submitted = EXCLUDED.exercise_submitted,
                exercise_test_pass = EXCLUDED.exercise_test_pass,
                exercise_good_structure = EXCLUDED.exercise_good_structure,
                exercise_good_doc = EXCLUDED.exercise_good_doc,
                total = EXCLUDED.total, updated_at = EXCLUDED.updated_at`
	now := time.Now().UTC()
	for _, rec := range records {
		row := toRow(rec)
		row.CreatedAt = now
		row.UpdatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("upsert week record: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit week records: %w", err)
	}
	return nil
}

// Delete removes one student's record for one week. Returns the number of
// rows removed so callers can distinguish a miss.
func (r *WeekRecordRepository) Delete(ctx context.Context, week int, name, mail string) (int64, error) {
	const query = `DELETE FROM week_records WHERE week = $1 AND name = $2 AND mail = $3`
	res, err := r.db.ExecContext(ctx, query, week, name, mail)
	if err != nil {
		return 0, fmt.Errorf("delete week record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete week record: %w", err)
	}
	return n, nil
}

// AttendanceCount returns how many students attended the given week.
func (r *WeekRecordRepository) AttendanceCount(ctx context.Context, week int) (int, error) {
	const query = `SELECT COUNT(*) FROM week_records WHERE week = $1 AND attendance = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, week); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

// StudentCount returns the number of distinct students on the roster.
func (r *WeekRecordRepository) StudentCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(DISTINCT name) FROM week_records`
	var count int
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// LeaderboardTotals aggregates each student's cumulative score and the
// number of weeks whose exercise passed the private test suite. The
// baseline week never contributes.
func (r *WeekRecordRepository) LeaderboardTotals(ctx context.Context) ([]models.LeaderboardEntry, error) {
	const query = `SELECT name, mail,
                COALESCE(SUM(total), 0) AS total_score,
                COALESCE(SUM(CASE WHEN exercise_test_pass THEN 1 ELSE 0 END), 0) AS exercise_total_score
        FROM week_records
        WHERE week > 0
        GROUP BY name, mail
        ORDER BY total_score DESC, name`
	var entries []models.LeaderboardEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("aggregate leaderboard: %w", err)
	}
	return entries, nil
}
