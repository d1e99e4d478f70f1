package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/interactive/eservice-platform/internal/core/domain"
	"github.com/interactive/eservice-platform/internal/core/ports"
)

// RequestService owns the request lifecycle state machine.
type RequestService struct {
	repo ports.RequestRepository
	log  zerolog.Logger
}

func NewRequestService(repo ports.RequestRepository, log zerolog.Logger) *RequestService {
	return &RequestService{repo: repo, log: log}
}

// Create persists a new request. Status and creation time are forced by the
// service: every request starts life as DRAFT.
func (s *RequestService) Create(ctx context.Context, input ports.CreateRequestInput) (*domain.Request, error) {
	req := &domain.Request{
		UserID:       input.UserID,
		DocumentType: input.DocumentType,
		Title:        input.Title,
		Description:  input.Description,
		BirthDate:    input.BirthDate,
		BirthPlace:   input.BirthPlace,
		Status:       domain.StatusDraft,
		CreatedAt:    time.Now().UTC(),
		Deadline:     input.Deadline,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		s.log.Error().Err(err).Int64("user_id", input.UserID).Msg("failed to create request")
		return nil, err
	}

	s.log.Info().
		Int64("request_id", req.ID).
		Int64("user_id", req.UserID).
		Str("document_type", req.DocumentType).
		Msg("request created")

	return req, nil
}

func (s *RequestService) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RequestService) ListByUser(ctx context.Context, userID int64) ([]*domain.Request, error) {
	return s.repo.FindAllByUserID(ctx, userID)
}

// ListByStatus matches the status string verbatim against the stored value.
// Unrecognised statuses match nothing and yield an empty list, not an error.
func (s *RequestService) ListByStatus(ctx context.Context, status string) ([]*domain.Request, error) {
	return s.repo.FindAllByStatus(ctx, status)
}

// Submit moves a DRAFT request to SUBMITTED.
func (s *RequestService) Submit(ctx context.Context, id int64) (*domain.Request, error) {
	return s.transition(ctx, id, domain.StatusSubmitted)
}

// Reject moves a SUBMITTED request to REJECTED.
func (s *RequestService) Reject(ctx context.Context, id int64) (*domain.Request, error) {
	return s.transition(ctx, id, domain.StatusRejected)
}

// Approve moves a SUBMITTED request to APPROVED.
func (s *RequestService) Approve(ctx context.Context, id int64) (*domain.Request, error) {
	return s.transition(ctx, id, domain.StatusApproved)
}

// transition is the single guarded read-modify-write behind all status
// mutations. The not-found check always precedes the transition-validity
// check, so a missing id never reports an invalid transition. The write is a
// compare-and-set on the status that was read: if a concurrent operation
// committed first, the stale write misses and fails instead of clobbering it.
func (s *RequestService) transition(ctx context.Context, id int64, next domain.RequestStatus) (*domain.Request, error) {
	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: only %s requests can be %s", domain.ErrInvalidTransition, requiredStatus(next), pastTense(next))
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status, next); err != nil {
		s.log.Error().Err(err).
			Int64("request_id", id).
			Str("from", string(req.Status)).
			Str("to", string(next)).
			Msg("status transition failed")
		return nil, err
	}

	req.Status = next

	s.log.Info().
		Int64("request_id", id).
		Str("status", string(next)).
		Msg("request transitioned")

	return req, nil
}

// requiredStatus names the only status a request may hold for next to be legal.
func requiredStatus(next domain.RequestStatus) domain.RequestStatus {
	if next == domain.StatusSubmitted {
		return domain.StatusDraft
	}
	return domain.StatusSubmitted
}

func pastTense(next domain.RequestStatus) string {
	switch next {
	case domain.StatusSubmitted:
		return "submitted"
	case domain.StatusApproved:
		return "approved"
	default:
		return "rejected"
	}
}
