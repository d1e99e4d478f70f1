package ports

import (
	"context"

	"github.com/interactive/eservice-platform/internal/core/domain"
)

// RequestRepository defines persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) error
	FindByID(ctx context.Context, id int64) (*domain.Request, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]*domain.Request, error)
	// FindAllByStatus matches the status string verbatim; unknown values
	// simply match nothing.
	FindAllByStatus(ctx context.Context, status string) ([]*domain.Request, error)
	// UpdateStatus sets the request's status to next only if its current
	// persisted status still equals from (compare-and-set). A concurrent
	// committed transition makes the write miss, reported as
	// domain.ErrInvalidTransition; a missing id as domain.ErrRequestNotFound.
	UpdateStatus(ctx context.Context, id int64, from, next domain.RequestStatus) error
}
