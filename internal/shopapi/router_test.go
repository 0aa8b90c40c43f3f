package shopapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/medshop/internal/backend"
)

func testContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestParsePagination(t *testing.T) {
	c, _ := testContext(t, "/?page=3&pageSize=50")
	page, pageSize := parsePagination(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)

	c, _ = testContext(t, "/?page=-1&pageSize=9999")
	page, pageSize = parsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)

	c, _ = testContext(t, "/")
	page, pageSize = parsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}

func TestFailErr_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{backend.Validationf("bad input"), http.StatusBadRequest, "VALIDATION_FAILED"},
		{&backend.Error{Kind: backend.KindAuth, Message: "no"}, http.StatusUnauthorized, "AUTH_FAILED"},
		{&backend.Error{Kind: backend.KindNotFound, Message: "gone"}, http.StatusNotFound, "NOT_FOUND"},
		{&backend.Error{Kind: backend.KindConflict, Message: "dup"}, http.StatusConflict, "CONFLICT"},
		{&backend.Error{Kind: backend.KindNetwork, Message: "down"}, http.StatusBadGateway, "BACKEND_UNREACHABLE"},
		{&backend.Error{Kind: backend.KindUnknown, Message: "eh"}, http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}
	for _, tc := range cases {
		c, rec := testContext(t, "/")
		require.NoError(t, failErr(c, tc.err))
		assert.Equal(t, tc.status, rec.Code)
		assert.Contains(t, rec.Body.String(), tc.code)
	}
}
