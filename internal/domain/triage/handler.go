package triage

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisense/intake/internal/domain/patient"
	"github.com/medisense/intake/internal/platform/auth"
	"github.com/medisense/intake/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc) {
	api.POST("/cases/from-ia", h.CreateFromTriage)
	api.GET("/cases", h.ListCases, requireAuth)
	api.GET("/appointments", h.ListAppointments, requireAuth)
}

type fromTriageRequest struct {
	Patient                patient.Identity `json:"patient"`
	ConversationSummary    string           `json:"conversation_summary"`
	Symptoms               SymptomList      `json:"symptoms"`
	Specialty              string           `json:"specialty"`
	RiskLevel              string           `json:"risk_level"`
	PossibleDiagnosis      string           `json:"possible_diagnosis"`
	RecommendedTreatment   string           `json:"recommended_treatment"`
	DiagnosisJustification string           `json:"diagnosis_justification"`
	AppointmentTime        string           `json:"appointment_time"`
}

func (h *Handler) CreateFromTriage(c echo.Context) error {
	var req fromTriageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Campos incompletos")
	}

	cs, appt, err := h.svc.CreateFromTriage(c.Request().Context(), Intake{
		Patient:         req.Patient,
		Summary:         req.ConversationSummary,
		Symptoms:        req.Symptoms,
		Specialty:       req.Specialty,
		RiskLevel:       req.RiskLevel,
		Diagnosis:       req.PossibleDiagnosis,
		Treatment:       req.RecommendedTreatment,
		Justification:   req.DiagnosisJustification,
		AppointmentTime: req.AppointmentTime,
	})
	switch {
	case errors.Is(err, ErrMissingAppointmentTime):
		return echo.NewHTTPError(http.StatusBadRequest, "El usuario debe elegir una fecha y hora para la cita.")
	case errors.Is(err, patient.ErrMissingDocument):
		return echo.NewHTTPError(http.StatusBadRequest, "DNI es requerido")
	case errors.Is(err, ErrNoDoctorAvailable):
		return echo.NewHTTPError(http.StatusBadRequest, "No existe médico para esa especialidad")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Caso clínico registrado y cita confirmada.",
		"case":        cs,
		"appointment": appt,
	})
}

func (h *Handler) ListCases(c echo.Context) error {
	doctorID := auth.DoctorIDFromContext(c.Request().Context())
	params := pagination.FromContext(c)

	records, total, err := h.svc.ListCases(c.Request().Context(), doctorID, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, params.Limit, params.Offset))
}

func (h *Handler) ListAppointments(c echo.Context) error {
	doctorID := auth.DoctorIDFromContext(c.Request().Context())
	params := pagination.FromContext(c)

	records, total, err := h.svc.ListAppointments(c.Request().Context(), doctorID, params.Limit, params.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(records, total, params.Limit, params.Offset))
}
