package history

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medisense/intake/internal/domain/patient"
	"github.com/medisense/intake/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc) {
	api.POST("/wellness/log", h.LogWellness)
	api.POST("/conversations/log", h.LogConversation)
	api.GET("/conversations/by-patient/:dni", h.ListConversations, requireAuth)
}

type logConversationRequest struct {
	DNI     string     `json:"dni"`
	CaseID  *uuid.UUID `json:"case_id"`
	Sender  string     `json:"sender"`
	Message string     `json:"message"`
}

func (h *Handler) LogConversation(c echo.Context) error {
	var req logConversationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dni, sender y message son requeridos")
	}

	e, err := h.svc.LogConversation(c.Request().Context(), req.DNI, req.CaseID, req.Sender, req.Message)
	switch {
	case errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "dni, sender y message son requeridos")
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Mensaje registrado",
		"data":    e,
	})
}

type logWellnessRequest struct {
	Patient     patient.Identity `json:"patient"`
	UserMessage string           `json:"user_message"`
	AIResponse  string           `json:"ai_response"`
	Category    string           `json:"category"`
}

func (h *Handler) LogWellness(c echo.Context) error {
	var req logWellnessRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Datos incompletos")
	}

	e, err := h.svc.LogWellness(c.Request().Context(), req.Patient, req.UserMessage, req.AIResponse, req.Category)
	switch {
	case errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Datos incompletos")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Tip registrado",
		"data":    e,
	})
}

func (h *Handler) ListConversations(c echo.Context) error {
	params := pagination.FromContext(c)

	entries, total, err := h.svc.ListConversations(c.Request().Context(), c.Param("dni"), params.Limit, params.Offset)
	switch {
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Paciente no encontrado")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, pagination.NewResponse(entries, total, params.Limit, params.Offset))
}
