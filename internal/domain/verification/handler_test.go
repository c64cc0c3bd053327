package verification

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandler_SendCode(t *testing.T) {
	svc, codes, _, p := newTestService()
	h, e := NewHandler(svc), echo.New()

	c, rec := postJSON(e, `{"dni":"`+p.DocumentNumber+`"}`)
	if err := h.SendCode(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["message"] != "Código de verificación enviado al correo registrado." {
		t.Errorf("unexpected message: %v", resp["message"])
	}
	if resp["expires_at"] == nil {
		t.Error("expected expires_at in response")
	}
	if len(codes.codes) == 1 && strings.Contains(rec.Body.String(), codes.codes[0].Value) {
		t.Error("response must not expose the code value")
	}
}

func TestHandler_SendCode_MissingDNI(t *testing.T) {
	svc, _, _, _ := newTestService()
	h, e := NewHandler(svc), echo.New()

	c, _ := postJSON(e, `{}`)
	err := h.SendCode(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "DNI es requerido" {
		t.Errorf("expected 400 DNI es requerido, got %v", err)
	}
}

func TestHandler_SendCode_UnknownPatient(t *testing.T) {
	svc, _, _, _ := newTestService()
	h, e := NewHandler(svc), echo.New()

	c, _ := postJSON(e, `{"dni":"00000000"}`)
	err := h.SendCode(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound || httpErr.Message != "Paciente no encontrado" {
		t.Errorf("expected 404 Paciente no encontrado, got %v", err)
	}
}

func TestHandler_VerifyCode(t *testing.T) {
	svc, codes, _, p := newTestService()
	h, e := NewHandler(svc), echo.New()

	c, _ := postJSON(e, `{"dni":"`+p.DocumentNumber+`"}`)
	if err := h.SendCode(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	c, rec := postJSON(e, `{"dni":"`+p.DocumentNumber+`","code":"`+codes.codes[0].Value+`"}`)
	if err := h.VerifyCode(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["message"] != "Verificación exitosa" || resp["verified"] != true {
		t.Errorf("unexpected response: %v", resp)
	}
	if resp["patient"] == nil {
		t.Error("expected patient in response")
	}
}

func TestHandler_VerifyCode_MissingFields(t *testing.T) {
	svc, _, _, p := newTestService()
	h, e := NewHandler(svc), echo.New()

	c, _ := postJSON(e, `{"dni":"`+p.DocumentNumber+`"}`)
	err := h.VerifyCode(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "DNI y código son requeridos" {
		t.Errorf("expected 400 DNI y código son requeridos, got %v", err)
	}
}

func TestHandler_VerifyCode_Errors(t *testing.T) {
	svc, codes, _, p := newTestService()
	h, e := NewHandler(svc), echo.New()

	// No code issued yet.
	c, _ := postJSON(e, `{"dni":"`+p.DocumentNumber+`","code":"123456"}`)
	err := h.VerifyCode(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "No hay código activo para este paciente" {
		t.Errorf("expected 400 No hay código activo, got %v", err)
	}

	c, _ = postJSON(e, `{"dni":"`+p.DocumentNumber+`"}`)
	if err := h.SendCode(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wrong := "000000"
	if codes.codes[0].Value == wrong {
		wrong = "000001"
	}
	c, _ = postJSON(e, `{"dni":"`+p.DocumentNumber+`","code":"`+wrong+`"}`)
	err = h.VerifyCode(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "Código incorrecto" {
		t.Errorf("expected 400 Código incorrecto, got %v", err)
	}

	codes.codes[0].ExpiresAt = codes.codes[0].ExpiresAt.Add(-2 * CodeTTL)
	c, _ = postJSON(e, `{"dni":"`+p.DocumentNumber+`","code":"`+codes.codes[0].Value+`"}`)
	err = h.VerifyCode(c)
	httpErr, ok = err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest || httpErr.Message != "El código ha expirado" {
		t.Errorf("expected 400 El código ha expirado, got %v", err)
	}
}
