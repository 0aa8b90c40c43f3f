package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/webserver"
)

func registerRegisterRoutes() {
	webserver.PubGET("/api/register", getRegistration)
	webserver.PubPOST("/api/register", postRegister)
	webserver.PubPOST("/api/register/verify", postVerifyOtp)
	webserver.PubPOST("/api/register/resend", postResendOtp)
	webserver.PubPOST("/api/register/back", postRegisterBack)
}

func getRegistration(c echo.Context) error {
	reg := webserver.GetClient(c).Registration()
	// a referral may supply the email and jump straight to verification
	if email := c.QueryParam("email"); email != "" {
		reg.Start(email)
	}
	return ok(c, map[string]interface{}{
		"step":  reg.Step().String(),
		"email": reg.Email(),
	})
}

func postRegister(c echo.Context) error {
	var payload struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "name, email and password are required", nil)
	}

	reg := webserver.GetClient(c).Registration()
	if err := reg.Submit(c.Request().Context(), payload.Name, payload.Email, payload.Password); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"step": reg.Step().String()})
}

func postVerifyOtp(c echo.Context) error {
	var payload struct {
		Otp string `json:"otp"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	reg := webserver.GetClient(c).Registration()
	if err := reg.Verify(c.Request().Context(), payload.Otp); err != nil {
		return failErr(c, err)
	}
	// verification never establishes a session; the user logs in next
	return ok(c, map[string]interface{}{"redirect": "/login"})
}

func postResendOtp(c echo.Context) error {
	reg := webserver.GetClient(c).Registration()
	if err := reg.Resend(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{"step": reg.Step().String()})
}

func postRegisterBack(c echo.Context) error {
	reg := webserver.GetClient(c).Registration()
	reg.Back()
	return ok(c, map[string]interface{}{"step": reg.Step().String()})
}
