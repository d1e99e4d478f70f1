package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

var ErrUserExists = errors.New("username is already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrTooManyLoginAttempts = errors.New("too many failed login attempts")
var ErrInvalidToken = errors.New("invalid or expired token")

// User models a registered account. The password is only ever held as a
// bcrypt hash; the hash never leaves the process in API responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// Principal is the authenticated identity reconstructed from a validated
// token: a plain value threaded through the request context, nothing more.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given role label.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
