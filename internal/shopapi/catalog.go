package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/medshop/internal/query"
	"github.com/talkincode/medshop/internal/webserver"
)

func registerCatalogRoutes() {
	webserver.PubGET("/api/medicines", listMedicines)
	webserver.PubPOST("/api/medicines/search", searchMedicines)
	webserver.PubGET("/api/medicines/:id", getMedicine)
}

func listMedicines(c echo.Context) error {
	catalog := webserver.GetClient(c).Catalog()
	page, pageSize := parsePagination(c)
	catalog.SetPage(c.Request().Context(), page)

	state, medicines, errMsg := catalog.Snapshot()
	if state == query.Failed {
		return fail(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", errMsg, nil)
	}
	return paged(c, medicines, catalog.Total(), catalog.Page(), pageSize)
}

// searchMedicines commits the submitted term; searching never happens
// per keystroke, and a new term resets to the first page.
func searchMedicines(c echo.Context) error {
	var payload struct {
		Search string `json:"search"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}

	catalog := webserver.GetClient(c).Catalog()
	catalog.Commit(c.Request().Context(), payload.Search)

	state, medicines, errMsg := catalog.Snapshot()
	if state == query.Failed {
		return fail(c, http.StatusBadGateway, "CATALOG_UNAVAILABLE", errMsg, nil)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code":   "OK",
		"data":   medicines,
		"total":  catalog.Total(),
		"page":   catalog.Page(),
		"search": catalog.Query(),
	})
}

func getMedicine(c echo.Context) error {
	detail := webserver.GetClient(c).Detail()
	detail.Load(c.Request().Context(), c.Param("id"))

	state, medicine, errMsg := detail.Snapshot()
	if state == query.Failed {
		return fail(c, http.StatusNotFound, "MEDICINE_NOT_FOUND", errMsg, nil)
	}
	return ok(c, medicine)
}
