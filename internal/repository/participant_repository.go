package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Bitshala/admin/internal/models"
)

// ParticipantRepository reads the self-reported enrollment profiles that
// accompany the roster. Profiles are imported from the registration form
// and never written by this service.
type ParticipantRepository struct {
	db *sqlx.DB
}

// NewParticipantRepository creates a new participant repository.
func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// FindBackgroundByEmail returns one participant's enrollment profile.
func (r *ParticipantRepository) FindBackgroundByEmail(ctx context.Context, email string) (*models.StudentBackground, error) {
	const query = `SELECT describe_yourself, background, skills, location, why, year, books
        FROM participants WHERE email = $1`
	var bg models.StudentBackground
	if err := r.db.GetContext(ctx, &bg, query, email); err != nil {
		return nil, fmt.Errorf("find participant background: %w", err)
	}
	return &bg, nil
}
