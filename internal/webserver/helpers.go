package webserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const clientContextKey = "medshop_client"

// GetClient returns the per-browser UI client bound to this request.
func GetClient(c echo.Context) *Client {
	return c.Get(clientContextKey).(*Client)
}

// Guard gates a route on session state: while hydration is pending it
// answers a neutral placeholder, never a redirect; then it denies
// unauthenticated visitors toward login, and non-admins toward home for
// admin-only routes. Navigation convenience only; the backend enforces
// authorization for real.
func Guard(adminOnly bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			client := GetClient(c)
			if !client.Session().Ready() {
				return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
					"code":    "SESSION_LOADING",
					"pending": true,
				})
			}
			identity := client.Session().Identity()
			if identity == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"code":     "AUTH_REQUIRED",
					"redirect": "/login",
				})
			}
			if adminOnly && !identity.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"code":     "ADMIN_ONLY",
					"redirect": "/",
				})
			}
			return next(c)
		}
	}
}
