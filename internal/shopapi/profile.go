package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerProfileRoutes() {
	webserver.ApiGET("/api/profile", getProfile)
	webserver.ApiPUT("/api/profile", putProfile)
	webserver.ApiPUT("/api/profile/password", putPassword)
	webserver.ApiGET("/api/profile/addresses", listAddresses)
	webserver.ApiPOST("/api/profile/addresses", postAddress)
	webserver.ApiDELETE("/api/profile/addresses/:id", deleteAddress)
}

func getProfile(c echo.Context) error {
	client := webserver.GetClient(c)
	user, err := client.API().Profile(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, user)
}

func putProfile(c echo.Context) error {
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "name is required", nil)
	}

	client := webserver.GetClient(c)
	user, err := client.API().UpdateProfile(c.Request().Context(), payload.Name)
	if err != nil {
		return failErr(c, err)
	}
	// the held identity follows the profile; the credential is untouched
	client.Session().SetIdentity(user)
	return ok(c, user)
}

func putPassword(c echo.Context) error {
	var payload struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "currentPassword and newPassword are required", nil)
	}

	client := webserver.GetClient(c)
	if err := client.API().ChangePassword(c.Request().Context(), payload.CurrentPassword, payload.NewPassword); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"changed": true})
}

func listAddresses(c echo.Context) error {
	addrs, err := webserver.GetClient(c).API().Addresses(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, addrs)
}

func postAddress(c echo.Context) error {
	var payload domain.Address
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	created, err := webserver.GetClient(c).API().CreateAddress(c.Request().Context(), payload)
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, created)
}

func deleteAddress(c echo.Context) error {
	if err := webserver.GetClient(c).API().DeleteAddress(c.Request().Context(), c.Param("id")); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"deleted": true})
}
