package ports

import (
	"context"
	"time"

	"github.com/interactive/eservice-platform/internal/core/domain"
)

// CreateRequestInput carries all caller-supplied data for a new request.
// Status and CreatedAt are never accepted from the caller: the service forces
// DRAFT and the creation time.
type CreateRequestInput struct {
	UserID       int64
	DocumentType string
	Title        string
	Description  string
	BirthDate    string
	BirthPlace   string
	Deadline     time.Time
}

// RequestService defines use-case operations for the request lifecycle.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*domain.Request, error)
	GetByID(ctx context.Context, id int64) (*domain.Request, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Request, error)
	ListByStatus(ctx context.Context, status string) ([]*domain.Request, error)
	Submit(ctx context.Context, id int64) (*domain.Request, error)
	Reject(ctx context.Context, id int64) (*domain.Request, error)
	Approve(ctx context.Context, id int64) (*domain.Request, error)
}
