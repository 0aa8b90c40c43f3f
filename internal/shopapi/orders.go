package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/query"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerOrderRoutes() {
	webserver.ApiGET("/api/orders", listMyOrders)
}

func listMyOrders(c echo.Context) error {
	orders := webserver.GetClient(c).Orders()
	orders.Fetch(c.Request().Context())

	state, rows, errMsg := orders.Snapshot()
	if state == query.Failed {
		return fail(c, http.StatusBadGateway, "ORDERS_UNAVAILABLE", errMsg, nil)
	}
	return ok(c, rows)
}
