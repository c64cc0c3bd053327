package identity

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc, _ := newTestService()
	return NewHandler(svc), echo.New()
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_Register(t *testing.T) {
	h, e := newTestHandler()
	c, rec := postJSON(e, `{"name":"Dr. X","email":"x@medisense.ai","password":"pw","specialty":"Cardiología"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["message"] != "Usuario médico creado exitosamente" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not expose password material")
	}
}

func TestHandler_Register_MissingFields(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"name":"Dr. X"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "Campos incompletos" {
		t.Errorf("expected 400 Campos incompletos, got %v", err)
	}
}

func TestHandler_Register_Duplicate(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Dr. X","email":"x@medisense.ai","password":"pw","specialty":"Cardiología"}`

	c, _ := postJSON(e, body)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, _ = postJSON(e, body)
	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %v", err)
	}
}

func TestHandler_Login(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"name":"Dr. X","email":"x@medisense.ai","password":"pw","specialty":"Cardiología"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, `{"email":"x@medisense.ai","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["message"] != "Login exitoso" {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if token, _ := resp["token"].(string); token == "" {
		t.Error("expected bearer token in response")
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h, e := newTestHandler()
	c, _ := postJSON(e, `{"email":"nobody@medisense.ai","password":"pw"}`)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized || httpErr.Message != "Credenciales inválidas" {
		t.Errorf("expected 401 Credenciales inválidas, got %v", err)
	}
}
