package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/Theijiii/plms-sys-sub004/internal/domain"
)

// ReviewEventRepository defines the contract for the durable, append-only
// review audit log. Events are never updated or deleted.
type ReviewEventRepository interface {
	Create(ctx context.Context, event *domain.ReviewEvent) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID, offset, limit int) ([]domain.ReviewEvent, int, error)
}
