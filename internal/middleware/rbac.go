package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"riskdesk/internal/auth"
	"riskdesk/internal/rbac"
)

// RequirePermission gates an API route on an RBAC permission key. The
// check goes through the database so revocations apply immediately.
func RequirePermission(checker rbac.Checker, permKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			allowed, err := checker.Can(c.Request().Context(), claims.UserID, permKey)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "authorization check failed")
			}
			if !allowed {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
