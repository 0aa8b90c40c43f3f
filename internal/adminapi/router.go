// Package adminapi exposes the admin console endpoints: dashboard,
// medicine/order/user management and exports. Every route sits behind
// the admin-only guard; the backend still enforces authorization on its
// side.
package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/backend"
)

// InitRouter registers all admin console routes.
func InitRouter() {
	registerDashboardRoutes()
	registerMedicineRoutes()
	registerOrderRoutes()
	registerUserRoutes()
	registerExportRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": "OK",
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func failErr(c echo.Context, err error) error {
	switch backend.KindOf(err) {
	case backend.KindValidation:
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
	case backend.KindAuth:
		return fail(c, http.StatusUnauthorized, "AUTH_FAILED", err.Error(), nil)
	case backend.KindNotFound:
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case backend.KindConflict:
		return fail(c, http.StatusConflict, "CONFLICT", err.Error(), nil)
	case backend.KindNetwork:
		return fail(c, http.StatusBadGateway, "BACKEND_UNREACHABLE", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "UNKNOWN_ERROR", err.Error(), nil)
	}
}
