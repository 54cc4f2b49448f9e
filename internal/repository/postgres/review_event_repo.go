package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
	"github.com/Theijiii/plms-sys-sub004/internal/port"
)

type reviewEventRepo struct {
	db *sqlx.DB
}

// NewReviewEventRepo creates a new PostgreSQL-backed ReviewEventRepository.
func NewReviewEventRepo(db *sqlx.DB) port.ReviewEventRepository {
	return &reviewEventRepo{db: db}
}

func (r *reviewEventRepo) Create(ctx context.Context, event *domain.ReviewEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_events (id, application_id, actor_id, actor_name, from_status, to_status, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.ApplicationID, event.ActorID, event.ActorName,
		event.FromStatus, event.ToStatus, event.Notes)
	if err != nil {
		return fmt.Errorf("reviewEventRepo.Create: %w", err)
	}
	return nil
}

func (r *reviewEventRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID, offset, limit int) ([]domain.ReviewEvent, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM review_events WHERE application_id = $1`, applicationID)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewEventRepo.ListByApplication count: %w", err)
	}

	var events []domain.ReviewEvent
	err = r.db.SelectContext(ctx, &events,
		`SELECT * FROM review_events
		 WHERE application_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		applicationID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reviewEventRepo.ListByApplication: %w", err)
	}
	return events, total, nil
}
