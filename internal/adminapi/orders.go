package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/webserver"
)

func registerOrderRoutes() {
	webserver.AdminGET("/admin/api/orders", listOrders)
	webserver.AdminPUT("/admin/api/orders/:id", putOrderStatus)
}

func listOrders(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshOrders(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Orders())
}

func putOrderStatus(c echo.Context) error {
	var payload struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	console := webserver.GetClient(c).Console()
	if err := console.UpdateOrderStatus(c.Request().Context(), c.Param("id"), payload.OrderStatus); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Orders())
}
