package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerCheckoutRoutes() {
	webserver.ApiPOST("/api/checkout/start", postCheckoutStart)
	webserver.ApiGET("/api/checkout", getCheckout)
	webserver.ApiPOST("/api/checkout/address", postCheckoutAddress)
	webserver.ApiPOST("/api/checkout/select", postCheckoutSelect)
	webserver.ApiPOST("/api/checkout/cod", postCheckoutCOD)
	webserver.ApiPOST("/api/checkout/online", postCheckoutOnline)
	webserver.ApiPOST("/api/checkout/confirm", postCheckoutConfirm)
}

// emptyCartRedirect sends a checkout view over an empty cart back to
// the cart page before anything else runs.
func emptyCartRedirect(c echo.Context) error {
	return c.JSON(http.StatusConflict, map[string]interface{}{
		"code":     "CART_EMPTY",
		"redirect": "/cart",
	})
}

func postCheckoutStart(c echo.Context) error {
	client := webserver.GetClient(c)
	if client.Cart().Empty() {
		return emptyCartRedirect(c)
	}
	client.ResetCheckout()
	checkout := client.Checkout()
	if err := checkout.LoadAddresses(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return getCheckout(c)
}

func getCheckout(c echo.Context) error {
	client := webserver.GetClient(c)
	if client.Cart().Empty() {
		return emptyCartRedirect(c)
	}
	checkout := client.Checkout()
	selected, _ := checkout.Selected()
	return ok(c, map[string]interface{}{
		"state":     checkout.State().String(),
		"addresses": checkout.Addresses(),
		"selected":  selected.ID,
		"cart":      cartView(c),
	})
}

func postCheckoutAddress(c echo.Context) error {
	var payload domain.Address
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Street == "" || payload.City == "" || payload.PostalCode == "" || payload.Phone == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "street, city, postalCode and phone are required", nil)
	}

	checkout := webserver.GetClient(c).Checkout()
	created, err := checkout.AddAddress(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, created)
}

func postCheckoutSelect(c echo.Context) error {
	var payload struct {
		AddressID string `json:"addressId"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if err := webserver.GetClient(c).Checkout().Select(payload.AddressID); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"selected": payload.AddressID})
}

// postCheckoutCOD places a cash-on-delivery order; one request is both
// creation and terminal success.
func postCheckoutCOD(c echo.Context) error {
	client := webserver.GetClient(c)
	if err := client.Checkout().PlaceCOD(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"redirect": "/orders"})
}

func postCheckoutOnline(c echo.Context) error {
	client := webserver.GetClient(c)
	intent, err := client.Checkout().BeginOnline(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, intent)
}

// postCheckoutConfirm is the gateway callback relay. On verification
// failure the flow keeps the cart so the user can retry.
func postCheckoutConfirm(c echo.Context) error {
	var payload backend.PaymentConfirmation
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	client := webserver.GetClient(c)
	if err := client.Checkout().ConfirmPayment(c.Request().Context(), payload); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"redirect": "/orders"})
}
