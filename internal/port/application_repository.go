package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// ApplicationFilter narrows application list queries.
type ApplicationFilter struct {
	Domain domain.PermitDomain
	Status *domain.Status
	Search string
	Offset int
	Limit  int
}

// ApplicationRepository defines the contract for permit application persistence.
type ApplicationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PermitApplication, error)
	List(ctx context.Context, filter ApplicationFilter) ([]domain.PermitApplication, int, error)
	CountsByStatus(ctx context.Context, d domain.PermitDomain) (domain.StatusCounts, error)
	// UpdateReview persists a new status and comment log with a
	// compare-and-set on expectedVersion. A stale version yields
	// domain.ErrVersionConflict and changes nothing.
	UpdateReview(ctx context.Context, id uuid.UUID, expectedVersion int64, status domain.Status, commentLog string) (*domain.PermitApplication, error)
}
