package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/webserver"
)

type userRow struct {
	domain.User
	CanDelete bool `json:"canDelete"`
}

func registerUserRoutes() {
	webserver.AdminGET("/admin/api/users", listUsers)
	webserver.AdminPUT("/admin/api/users/:id", putUserRole)
	webserver.AdminDELETE("/admin/api/users/:id", deleteUser)
}

func listUsers(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshUsers(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	users := console.Users()
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{User: u, CanDelete: console.CanDeleteUser(u)})
	}
	return ok(c, rows)
}

func putUserRole(c echo.Context) error {
	var payload struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	console := webserver.GetClient(c).Console()
	if err := console.UpdateUserRole(c.Request().Context(), c.Param("id"), payload.Role); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Users())
}

func deleteUser(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	confirmed := cast.ToBool(c.QueryParam("confirm"))
	if err := console.DeleteUser(c.Request().Context(), c.Param("id"), confirmed); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Users())
}
