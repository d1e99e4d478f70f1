package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/interactive/eservice-platform/internal/core/domain"
	"github.com/interactive/eservice-platform/internal/core/ports"
)

type stubTokenService struct {
	claims map[string]*ports.TokenClaims
}

func (s *stubTokenService) Issue(_ *domain.User) (string, error) {
	return "", nil
}

func (s *stubTokenService) Validate(token string) (*ports.TokenClaims, error) {
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	return nil, domain.ErrInvalidToken
}

func newStubTokens() *stubTokenService {
	return &stubTokenService{claims: map[string]*ports.TokenClaims{
		"good-token": {Username: "alice", Roles: []string{domain.RoleUser}},
	}}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(newStubTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		p, ok := PrincipalFrom(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if p.Username != "alice" {
			t.Fatalf("unexpected principal: %+v", p)
		}
		if !p.HasRole(domain.RoleUser) {
			t.Fatalf("expected role %s", domain.RoleUser)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

// The gate is additive: absence of a credential must not abort the pipeline.
func TestAuthenticate_MissingHeaderProceedsUnauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(newStubTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if _, ok := PrincipalFrom(c); ok {
			t.Fatalf("principal must not be set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedHeaderProceedsUnauthenticated(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer "} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		called := false
		mw := Authenticate(newStubTokens(), zerolog.Nop())
		handler := mw(func(c echo.Context) error {
			called = true
			if _, ok := PrincipalFrom(c); ok {
				t.Fatalf("header %q: principal must not be set", header)
			}
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("header %q: handler error: %v", header, err)
		}
		if !called {
			t.Fatalf("header %q: next not called", header)
		}
	}
}

func TestAuthenticate_InvalidTokenProceedsUnauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged-token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(newStubTokens(), zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		if _, ok := PrincipalFrom(c); ok {
			t.Fatalf("principal must not be set for invalid token")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireAuthenticated_RejectsWithEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := RequireAuthenticated()
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["status"] != float64(http.StatusUnauthorized) {
		t.Fatalf("unexpected status field: %v", body["status"])
	}
	if body["error"] != "Unauthorized" {
		t.Fatalf("unexpected error field: %v", body["error"])
	}
	if body["path"] != "/api/v1/requests/1" {
		t.Fatalf("unexpected path field: %v", body["path"])
	}
	if body["message"] == "" {
		t.Fatalf("expected a message")
	}
}

func TestRequireAuthenticated_AllowsPrincipal(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(PrincipalContextKey, domain.Principal{Username: "alice", Roles: []string{domain.RoleUser}})

	called := false
	mw := RequireAuthenticated()
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
