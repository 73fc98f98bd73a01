package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"riskdesk/internal/auth"
)

// PageAuth returns an Echo middleware for server-rendered pages. It reads
// the access token from the "token" cookie (falling back to the
// Authorization header) and redirects browsers to /login instead of
// answering 401.
func PageAuth(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenStr := ""
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = cookie.Value
			}
			if tokenStr == "" {
				if h := c.Request().Header.Get(echo.HeaderAuthorization); len(h) > 7 && h[:7] == "Bearer " {
					tokenStr = h[7:]
				}
			}
			if tokenStr == "" {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			claims, err := jwtService.ValidateToken(tokenStr)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}

			c.Set("page_claims", claims)
			return next(c)
		}
	}
}

// RequirePageRole gates a page on a role slug carried in the claims.
// Non-members get 403 rather than a redirect loop.
func RequirePageRole(slug string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("page_claims").(*auth.Claims)
			if !ok {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			if !claims.HasRole(slug) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
