package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerSessionRoutes() {
	webserver.PubGET("/api/session", getSession)
	webserver.PubPOST("/api/session/login", postLogin)
	webserver.PubPOST("/api/session/logout", postLogout)
}

func getSession(c echo.Context) error {
	client := webserver.GetClient(c)
	sess := client.Session()
	return ok(c, map[string]interface{}{
		"ready":     sess.Ready(),
		"identity":  sess.Identity(),
		"cartCount": client.Cart().Count(),
	})
}

func postLogin(c echo.Context) error {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Email == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "email and password are required", nil)
	}

	client := webserver.GetClient(c)
	if err := client.Session().Login(c.Request().Context(), payload.Email, payload.Password); err != nil {
		// an unverified account is routed to the verify step with the
		// email pre-filled
		if backend.IsAuth(err) && strings.Contains(strings.ToLower(err.Error()), "verif") {
			client.Registration().Start(payload.Email)
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"code":     "ACCOUNT_UNVERIFIED",
				"message":  err.Error(),
				"redirect": "/register",
				"email":    payload.Email,
			})
		}
		zap.L().Warn("login failed", zap.String("email", payload.Email), zap.Error(err))
		return failErr(c, err)
	}
	return ok(c, map[string]interface{}{
		"identity":  client.Session().Identity(),
		"cartCount": client.Cart().Count(),
	})
}

func postLogout(c echo.Context) error {
	client := webserver.GetClient(c)
	client.Session().Logout()
	client.ResetCheckout()
	return ok(c, map[string]interface{}{"redirect": "/"})
}
