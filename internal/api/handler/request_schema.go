package handler

import "time"

// createRequestRequest carries the caller-supplied request fields. Status and
// createdAt are intentionally absent: the server forces both.
type createRequestRequest struct {
	UserID       int64     `json:"userId"       validate:"required,gt=0"`
	DocumentType string    `json:"documentType" validate:"required,oneof=CNI PASSEPORT PERMIS"`
	Title        string    `json:"title"        validate:"required"`
	Description  string    `json:"description"`
	BirthDate    string    `json:"birthDate"    validate:"required,datetime=2006-01-02"`
	BirthPlace   string    `json:"birthPlace"   validate:"required"`
	Deadline     time.Time `json:"deadline"     validate:"required"`
}
