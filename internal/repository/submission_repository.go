package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SubmissionRepository looks up exercise submission repository links per
// student per week.
type SubmissionRepository struct {
	db *sqlx.DB
}

// NewSubmissionRepository creates a new submission repository.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// FindLink returns the submission URL for a student and week.
func (r *SubmissionRepository) FindLink(ctx context.Context, week int, name string) (string, error) {
	const query = `SELECT url FROM submissions WHERE week = $1 AND student_name = $2`
	var url string
	if err := r.db.GetContext(ctx, &url, query, week, name); err != nil {
		return "", fmt.Errorf("find submission link: %w", err)
	}
	return url, nil
}
