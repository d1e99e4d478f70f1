package ports

import "github.com/interactive/eservice-platform/internal/core/domain"

// TokenClaims is the identity embedded in a validated bearer token.
type TokenClaims struct {
	Username string
	Roles    []string
}

// TokenService issues and validates signed, time-bounded bearer tokens.
// Tokens are stateless: validity is solely a function of signature and
// expiry at verification time, never of server-side state.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	// Validate returns the embedded claims, or domain.ErrInvalidToken for any
	// failure (malformed token, signature mismatch, expiry). Callers must
	// treat all three identically: not authenticated.
	Validate(token string) (*TokenClaims, error)
}
