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

type applicationRepo struct {
	db *sqlx.DB
}

// NewApplicationRepo creates a new PostgreSQL-backed ApplicationRepository.
func NewApplicationRepo(db *sqlx.DB) port.ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PermitApplication, error) {
	var app domain.PermitApplication
	err := r.db.GetContext(ctx, &app,
		`SELECT * FROM permit_applications WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("applicationRepo.GetByID: %w", err)
	}
	return &app, nil
}

func (r *applicationRepo) List(ctx context.Context, filter port.ApplicationFilter) ([]domain.PermitApplication, int, error) {
	where := []string{`domain = $1`}
	args := []interface{}{filter.Domain}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = append(where, fmt.Sprintf(`status = $%d`, len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(`(applicant_name ILIKE $%d OR reference_no ILIKE $%d)`, n, n))
	}
	cond := strings.Join(where, " AND ")

	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM permit_applications WHERE `+cond, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List count: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, filter.Offset)

	var apps []domain.PermitApplication
	err = r.db.SelectContext(ctx, &apps,
		`SELECT * FROM permit_applications WHERE `+cond+
			fmt.Sprintf(` ORDER BY submitted_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, fmt.Errorf("applicationRepo.List: %w", err)
	}
	return apps, total, nil
}

func (r *applicationRepo) CountsByStatus(ctx context.Context, d domain.PermitDomain) (domain.StatusCounts, error) {
	rows := []struct {
		Status domain.Status `db:"status"`
		Count  int           `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT status, COUNT(*) AS count
		 FROM permit_applications
		 WHERE domain = $1
		 GROUP BY status`, d)
	if err != nil {
		return nil, fmt.Errorf("applicationRepo.CountsByStatus: %w", err)
	}

	counts := make(domain.StatusCounts, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *applicationRepo) UpdateReview(ctx context.Context, id uuid.UUID, expectedVersion int64, status domain.Status, commentLog string) (*domain.PermitApplication, error) {
	var app domain.PermitApplication
	err := r.db.GetContext(ctx, &app,
		`UPDATE permit_applications
		 SET status = $1, comment_log = $2, version = version + 1, updated_at = NOW()
		 WHERE id = $3 AND version = $4
		 RETURNING *`,
		status, commentLog, id, expectedVersion)
	if err == nil {
		return &app, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("applicationRepo.UpdateReview: %w", err)
	}

	// No row matched: either the application is gone or the version is stale.
	var exists bool
	if chkErr := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM permit_applications WHERE id = $1)`, id); chkErr != nil {
		return nil, fmt.Errorf("applicationRepo.UpdateReview check: %w", chkErr)
	}
	if !exists {
		return nil, domain.ErrNotFound
	}
	return nil, domain.ErrVersionConflict
}
