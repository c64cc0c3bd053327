package verification

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisense/intake/internal/domain/patient"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/send-code", h.SendCode)
	api.POST("/patients/verify-code", h.VerifyCode)
}

type sendCodeRequest struct {
	DNI string `json:"dni"`
}

func (h *Handler) SendCode(c echo.Context) error {
	var req sendCodeRequest
	if err := c.Bind(&req); err != nil || req.DNI == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "DNI es requerido")
	}

	expiresAt, err := h.svc.Issue(c.Request().Context(), req.DNI)
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Código de verificación enviado al correo registrado.",
		"expires_at": expiresAt,
	})
}

type verifyCodeRequest struct {
	DNI  string `json:"dni"`
	Code string `json:"code"`
}

func (h *Handler) VerifyCode(c echo.Context) error {
	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil || req.DNI == "" || req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "DNI y código son requeridos")
	}

	p, err := h.svc.Verify(c.Request().Context(), req.DNI, req.Code)
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	case errors.Is(err, ErrNoActiveCode):
		return echo.NewHTTPError(http.StatusBadRequest, "No hay código activo para este paciente")
	case errors.Is(err, ErrCodeIncorrect):
		return echo.NewHTTPError(http.StatusBadRequest, "Código incorrecto")
	case errors.Is(err, ErrCodeExpired):
		return echo.NewHTTPError(http.StatusBadRequest, "El código ha expirado")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "Verificación exitosa",
		"verified": true,
		"patient":  p,
	})
}
