package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/interactive/eservice-platform/internal/core/domain"
)

type stubAuthService struct {
	signupErr error
	loginErr  error
	user      *domain.User
	token     string
}

func (s *stubAuthService) Signup(_ context.Context, username, _ string) (*domain.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &domain.User{ID: 1, Username: username, Roles: []string{domain.RoleUser}}, nil
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return s.token, s.user, nil
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pass123"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["message"] != "user registered successfully" {
		t.Fatalf("unexpected message: %q", body["message"])
	}
}

func TestAuthHandler_Signup_ValidationFails(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []string{
		`{"username":"al","password":"pass123"}`,
		`{"username":"alice","password":"short"}`,
		`{"password":"pass123"}`,
	}
	for _, payload := range cases {
		c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup", payload)
		err := h.Signup(c)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %v", payload, err)
		}
	}
}

func TestAuthHandler_Signup_DuplicateBubblesUp(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{signupErr: domain.ErrUserExists})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","password":"pass123"}`)

	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		token: "signed-token",
		user:  &domain.User{ID: 4, Username: "alice", Roles: []string{domain.RoleUser}},
	})
	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pass123"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Token != "signed-token" || body.ID != 4 || body.Username != "alice" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if len(body.Roles) != 1 || body.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", body.Roles)
	}
}

func TestAuthHandler_Login_BadCredentialsBubblesUp(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/login", `{"username":"alice"}`)

	err := h.Login(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
