package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager("test-secret")
	doctorID := uuid.New()

	token, err := m.Issue(doctorID, "Cardiología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.DoctorID != doctorID {
		t.Errorf("expected doctor id %s, got %s", doctorID, claims.DoctorID)
	}
	if claims.Specialty != "Cardiología" {
		t.Errorf("expected specialty Cardiología, got %s", claims.Specialty)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 9*time.Hour || ttl > 10*time.Hour {
		t.Errorf("expected roughly 10h validity, got %v", ttl)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue(uuid.New(), "Pediatría")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewTokenManager("secret-b").Parse(token); err == nil {
		t.Error("expected parse to fail with wrong secret")
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret")
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		DoctorID: uuid.New(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Parse(signed); err == nil {
		t.Error("expected parse to fail for expired token")
	}
}

func callMiddleware(t *testing.T, m *TokenManager, authHeader string) (*echo.HTTPError, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}

	err := RequireDoctor(m)(handler)(c)
	if err == nil {
		return nil, called
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	return httpErr, called
}

func TestRequireDoctor_MissingToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	httpErr, called := callMiddleware(t, m, "")
	if called {
		t.Error("handler should not run without a token")
	}
	if httpErr == nil || httpErr.Code != http.StatusUnauthorized || httpErr.Message != "Token faltante" {
		t.Errorf("expected 401 Token faltante, got %v", httpErr)
	}
}

func TestRequireDoctor_InvalidToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	httpErr, called := callMiddleware(t, m, "Bearer not-a-token")
	if called {
		t.Error("handler should not run with an invalid token")
	}
	if httpErr == nil || httpErr.Code != http.StatusUnauthorized || httpErr.Message != "Token inválido" {
		t.Errorf("expected 401 Token inválido, got %v", httpErr)
	}
}

func TestRequireDoctor_ValidToken(t *testing.T) {
	m := NewTokenManager("test-secret")
	doctorID := uuid.New()
	token, err := m.Issue(doctorID, "Dermatología")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ctx := c.Request().Context()
		if got := DoctorIDFromContext(ctx); got != doctorID {
			t.Errorf("expected doctor id %s in context, got %s", doctorID, got)
		}
		if got := SpecialtyFromContext(ctx); got != "Dermatología" {
			t.Errorf("expected specialty in context, got %s", got)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := RequireDoctor(m)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
