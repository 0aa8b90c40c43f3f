package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/webserver"
)

func registerExportRoutes() {
	webserver.AdminPOST("/admin/api/refresh", refreshAll)
	webserver.AdminGET("/admin/api/export/users.csv", exportUsersCSV)
	webserver.AdminGET("/admin/api/export/orders.xlsx", exportOrdersXLSX)
}

func refreshAll(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshAll(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"medicines": len(console.Medicines()),
		"orders":    len(console.Orders()),
		"users":     len(console.Users()),
	})
}

func exportUsersCSV(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshUsers(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.csv"`)
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return console.ExportUsersCSV(c.Response())
}

func exportOrdersXLSX(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshOrders(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	return console.ExportOrdersXLSX(c.Response())
}
