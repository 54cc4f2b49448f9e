package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
)

type reviewerRepo struct {
	db *sqlx.DB
}

// NewReviewerRepo creates a new PostgreSQL-backed ReviewerRepository.
func NewReviewerRepo(db *sqlx.DB) port.ReviewerRepository {
	return &reviewerRepo{db: db}
}

func (r *reviewerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reviewer, error) {
	var rev domain.Reviewer
	err := r.db.GetContext(ctx, &rev,
		`SELECT * FROM reviewers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reviewerRepo.GetByID: %w", err)
	}
	return &rev, nil
}

func (r *reviewerRepo) GetByEmail(ctx context.Context, email string) (*domain.Reviewer, error) {
	var rev domain.Reviewer
	err := r.db.GetContext(ctx, &rev,
		`SELECT * FROM reviewers WHERE LOWER(email) = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reviewerRepo.GetByEmail: %w", err)
	}
	return &rev, nil
}
