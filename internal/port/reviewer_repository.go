package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// ReviewerRepository defines the contract for admin user persistence.
type ReviewerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reviewer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Reviewer, error)
}
