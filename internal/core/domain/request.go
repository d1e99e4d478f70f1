package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	StatusDraft     RequestStatus = "DRAFT"
	StatusSubmitted RequestStatus = "SUBMITTED"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
)

// validTransitions defines the allowed state machine transitions.
// APPROVED and REJECTED are terminal: no entry, no way out.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
}

var ErrRequestNotFound = errors.New("request not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Document types accepted on a request.
const (
	DocumentTypeIDCard   = "CNI"
	DocumentTypePassport = "PASSEPORT"
	DocumentTypePermit   = "PERMIS"
)

// Request is the workflow entity: an administrative document request owned by
// the user that created it. UserID and CreatedAt are set once at creation and
// never mutated; Status only changes through the lifecycle service.
type Request struct {
	ID           int64         `json:"id" bson:"_id"`
	UserID       int64         `json:"userId" bson:"user_id"`
	DocumentType string        `json:"documentType" bson:"document_type"`
	Title        string        `json:"title" bson:"title"`
	Description  string        `json:"description" bson:"description"`
	BirthDate    string        `json:"birthDate" bson:"birth_date"`
	BirthPlace   string        `json:"birthPlace" bson:"birth_place"`
	Status       RequestStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"createdAt" bson:"created_at"`
	Deadline     time.Time     `json:"deadline" bson:"deadline"`
}
