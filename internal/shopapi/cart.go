package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/webserver"
)

func registerCartRoutes() {
	webserver.ApiGET("/api/cart", getCart)
	webserver.ApiPOST("/api/cart/add", postCartAdd)
	webserver.ApiDELETE("/api/cart/:medicineId", deleteCartLine)
}

func cartView(c echo.Context) map[string]interface{} {
	cart := webserver.GetClient(c).Cart()
	return map[string]interface{}{
		"items": cart.Lines(),
		"count": cart.Count(),
		"total": cart.Total(),
	}
}

func getCart(c echo.Context) error {
	client := webserver.GetClient(c)
	if err := client.Cart().Refresh(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, cartView(c))
}

// postCartAdd applies a relative quantity change. The same endpoint
// serves increase and decrease; the in-flight guard refuses a second
// concurrent mutation of the same line.
func postCartAdd(c echo.Context) error {
	var payload struct {
		MedicineID string `json:"medicineId"`
		Quantity   int    `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.MedicineID == "" || payload.Quantity == 0 {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "medicineId and a non-zero quantity are required", nil)
	}

	client := webserver.GetClient(c)
	key := "cart:" + payload.MedicineID
	if !client.TryAcquire(key) {
		return fail(c, http.StatusConflict, "MUTATION_IN_FLIGHT", "this item is already being updated", nil)
	}
	defer client.Release(key)

	if err := client.Cart().Add(c.Request().Context(), payload.MedicineID, payload.Quantity); err != nil {
		return failErr(c, err)
	}
	return ok(c, cartView(c))
}

func deleteCartLine(c echo.Context) error {
	client := webserver.GetClient(c)
	medicineID := c.Param("medicineId")

	key := "cart:" + medicineID
	if !client.TryAcquire(key) {
		return fail(c, http.StatusConflict, "MUTATION_IN_FLIGHT", "this item is already being updated", nil)
	}
	defer client.Release(key)

	if err := client.Cart().Remove(c.Request().Context(), medicineID); err != nil {
		return failErr(c, err)
	}
	return ok(c, cartView(c))
}
