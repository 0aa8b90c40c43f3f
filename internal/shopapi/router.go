// Package shopapi exposes the customer-facing storefront endpoints:
// session, registration, catalog, cart, checkout, orders and profile.
package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/talkincode/medshop/internal/backend"
)

// InitRouter registers all storefront routes.
func InitRouter() {
	registerSessionRoutes()
	registerRegisterRoutes()
	registerCatalogRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
	registerOrderRoutes()
	registerProfileRoutes()
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

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":     "OK",
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("pageSize"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// failErr surfaces a re-thrown store error with its taxonomy status.
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
