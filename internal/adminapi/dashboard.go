package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/query"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerDashboardRoutes() {
	webserver.AdminGET("/admin/api/dashboard", getDashboard)
}

func getDashboard(c echo.Context) error {
	dashboard := webserver.GetClient(c).Dashboard()
	dashboard.Fetch(c.Request().Context())

	state, overview, errMsg := dashboard.Snapshot()
	if state == query.Failed {
		return fail(c, http.StatusBadGateway, "DASHBOARD_UNAVAILABLE", errMsg, nil)
	}
	return ok(c, overview)
}
