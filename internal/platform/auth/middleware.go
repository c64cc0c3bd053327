package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	DoctorIDKey  contextKey = "doctor_id"
	SpecialtyKey contextKey = "doctor_specialty"
)

// RequireDoctor returns middleware that rejects requests without a valid
// bearer token. The authenticated doctor's id and specialty are placed on the
// request context for handlers to read via DoctorIDFromContext.
func RequireDoctor(tokens *TokenManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token faltante")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token faltante")
			}

			claims, err := tokens.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token inválido")
			}

			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, DoctorIDKey, claims.DoctorID)
			ctx = context.WithValue(ctx, SpecialtyKey, claims.Specialty)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// DoctorIDFromContext retrieves the authenticated doctor's id from context.
func DoctorIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(DoctorIDKey).(uuid.UUID)
	return id
}

// SpecialtyFromContext retrieves the authenticated doctor's specialty from context.
func SpecialtyFromContext(ctx context.Context) string {
	s, _ := ctx.Value(SpecialtyKey).(string)
	return s
}
