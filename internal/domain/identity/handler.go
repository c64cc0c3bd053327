package identity

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/users/create", h.Register)
	api.POST("/auth/login", h.Login)
}

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Specialty string `json:"specialty"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Campos incompletos")
	}

	d, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Specialty)
	switch {
	case errors.Is(err, ErrMissingFields):
		return echo.NewHTTPError(http.StatusBadRequest, "Campos incompletos")
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "El usuario ya existe")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Usuario médico creado exitosamente",
		"user":    d,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Campos incompletos")
	}

	d, token, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Credenciales inválidas")
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "Error interno")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login exitoso",
		"user": map[string]interface{}{
			"id":        d.ID,
			"name":      d.Name,
			"specialty": d.Specialty,
			"email":     d.Email,
		},
		"token": token,
	})
}
