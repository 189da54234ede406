package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Bitshala/admin/internal/dto"
	"github.com/Bitshala/admin/internal/models"
	"github.com/Bitshala/admin/internal/score"
	appErrors "github.com/Bitshala/admin/pkg/errors"
)

// StudentHistoryStore reads one student's records across weeks.
type StudentHistoryStore interface {
	ListByName(ctx context.Context, name string) ([]models.WeekRecord, error)
}

// BackgroundReader reads enrollment profiles.
type BackgroundReader interface {
	FindBackgroundByEmail(ctx context.Context, email string) (*models.StudentBackground, error)
}

// StudentService serves per-student detail views.
type StudentService struct {
	history     StudentHistoryStore
	backgrounds BackgroundReader
	submissions SubmissionReader
	logger      *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(history StudentHistoryStore, backgrounds BackgroundReader, submissions SubmissionReader, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{history: history, backgrounds: backgrounds, submissions: submissions, logger: logger}
}

// History returns a student's full week-by-week record with summary
// statistics. Names arrive URL-encoded with underscores for spaces.
func (s *StudentService) History(ctx context.Context, name string) (*models.StudentProfile, error) {
	name = dto.DecodeName(strings.TrimSpace(name))
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}

	weeks, err := s.history.ListByName(ctx, name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student history")
	}
	if len(weeks) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	// Latest week carries the current group and TA assignment.
	latest := weeks[len(weeks)-1]
	profile := &models.StudentProfile{
		Name:  name,
		Email: latest.Email,
		Group: latest.Group,
		TA:    latest.TA,
		Weeks: weeks,
		Stats: score.Stats(weeks),
	}
	return profile, nil
}

// Background returns a student's self-reported enrollment profile.
func (s *StudentService) Background(ctx context.Context, email string) (*models.StudentBackground, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	bg, err := s.backgrounds.FindBackgroundByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no background on file")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load background")
	}
	return bg, nil
}

// SubmissionLink returns the exercise submission URL for a student and week.
func (s *StudentService) SubmissionLink(ctx context.Context, week int, name string) (*models.SubmissionLink, error) {
	name = dto.DecodeName(strings.TrimSpace(name))
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student name is required")
	}
	url, err := s.submissions.FindLink(ctx, week, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no submission for this week")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up submission")
	}
	return &models.SubmissionLink{URL: url}, nil
}
