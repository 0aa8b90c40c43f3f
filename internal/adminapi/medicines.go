package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/webserver"
)

type medicinePayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func registerMedicineRoutes() {
	webserver.AdminGET("/admin/api/medicines", listMedicines)
	webserver.AdminPOST("/admin/api/medicines", saveMedicine)
	webserver.AdminDELETE("/admin/api/medicines/:id", deleteMedicine)
}

func listMedicines(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	if err := console.RefreshMedicines(c.Request().Context()); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Medicines())
}

// saveMedicine creates or updates, keyed on whether the payload carries
// an id, then the console re-fetches the list unconditionally.
func saveMedicine(c echo.Context) error {
	var payload medicinePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Name == "" || payload.Price <= 0 {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", "name and a positive price are required", nil)
	}

	console := webserver.GetClient(c).Console()
	err := console.SaveMedicine(c.Request().Context(), domain.Medicine{
		ID:          payload.ID,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		Image:       payload.Image,
	})
	if err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Medicines())
}

func deleteMedicine(c echo.Context) error {
	console := webserver.GetClient(c).Console()
	confirmed := cast.ToBool(c.QueryParam("confirm"))
	if err := console.DeleteMedicine(c.Request().Context(), c.Param("id"), confirmed); err != nil {
		return failErr(c, err)
	}
	return ok(c, console.Medicines())
}
