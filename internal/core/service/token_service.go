package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/interactive/eservice-platform/internal/core/domain"
	"github.com/interactive/eservice-platform/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// jwtClaims is the wire shape of the token payload: subject, issued-at and
// expiry via the registered claims, plus the role labels.
type jwtClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and validates HS512-signed bearer tokens. The signing
// key is set once at construction and read concurrently thereafter.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService. An empty secret is a configuration
// error: the process must not start without one.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token service: signing secret is not set")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed token for the given user with issued-at = now and
// expires-at = now + ttl. Pure function of input, clock and key.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Roles: user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return t.SignedString(s.secret)
}

// Validate parses the token, verifies the signature and the expiry, and
// returns the embedded subject and roles. Every failure mode (malformed
// token, signature mismatch, expiry) collapses to domain.ErrInvalidToken so
// callers cannot tell them apart.
func (s *TokenService) Validate(token string) (*ports.TokenClaims, error) {
	claims := &jwtClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &ports.TokenClaims{
		Username: claims.Subject,
		Roles:    claims.Roles,
	}, nil
}
