package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces role-based access control on top of Authenticate.
// The lifecycle state machine itself is role-blind; this is the independent
// authorization layer wrapping it.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, unauthorizedResponse{
					Status:  http.StatusUnauthorized,
					Error:   "Unauthorized",
					Message: "full authentication is required to access this resource",
					Path:    c.Request().URL.Path,
				})
			}
			for _, role := range allowedRoles {
				if p.HasRole(role) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
