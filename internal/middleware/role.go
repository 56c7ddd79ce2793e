package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole aborts with 403 unless the authenticated user's role (as
// stored in the context by JWTAuth) is one of the given roles. Note
// that the per-store manager-of-record check still happens in the
// handlers; this gate only filters by account role.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"status": http.StatusForbidden, "isSuccess": false,
					"message": "forbidden", "result": nil,
				})
			}
			return next(c)
		}
	}
}
