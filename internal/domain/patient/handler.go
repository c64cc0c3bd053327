package patient

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group, requireAuth echo.MiddlewareFunc) {
	api.POST("/patients", h.Create, requireAuth)
	api.GET("/patients/by-dni/:dni", h.GetByDocument)
}

func (h *Handler) Create(c echo.Context) error {
	var id Identity
	if err := c.Bind(&id); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Campos incompletos")
	}

	p, err := h.svc.Create(c.Request().Context(), id)
	switch {
	case errors.Is(err, ErrMissingDocument):
		return echo.NewHTTPError(http.StatusBadRequest, "DNI es requerido")
	case errors.Is(err, ErrDuplicateDocument):
		return echo.NewHTTPError(http.StatusConflict, "El paciente ya existe")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Paciente creado correctamente",
		"data":    p,
	})
}

func (h *Handler) GetByDocument(c echo.Context) error {
	p, err := h.svc.FindByDocument(c.Request().Context(), c.Param("dni"))
	switch {
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"exists":  false,
			"message": "Paciente no encontrado",
		})
	case errors.Is(err, ErrMissingDocument):
		return echo.NewHTTPError(http.StatusBadRequest, "DNI es requerido")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"exists":  true,
		"patient": p,
	})
}
