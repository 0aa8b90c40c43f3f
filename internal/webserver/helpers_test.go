package webserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/store"
)

func testContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestGuard_Tiers(t *testing.T) {
	reg := NewRegistry(newStubAppCtx(t))
	next := func(c echo.Context) error { return c.String(http.StatusOK, "through") }

	t.Run("unauthenticated is redirected to login", func(t *testing.T) {
		c, rec := testContext(t, "/api/orders")
		c.Set(clientContextKey, reg.Get("sid-anon"))
		require.NoError(t, Guard(false)(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "/login")
	})

	t.Run("non-admin denied on admin routes", func(t *testing.T) {
		client := reg.Get("sid-user")
		require.NoError(t, client.Session().Login(context.Background(), "x@example.com", "pw"))

		c, rec := testContext(t, "/admin/api/users")
		c.Set(clientContextKey, client)
		require.NoError(t, Guard(true)(next)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "ADMIN_ONLY")

		c, rec = testContext(t, "/api/orders")
		c.Set(clientContextKey, client)
		require.NoError(t, Guard(false)(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "through", rec.Body.String())
	})

	t.Run("pending hydration answers a placeholder", func(t *testing.T) {
		// a client whose session has not hydrated yet
		api := backend.New("http://127.0.0.1:1", 0)
		client := &Client{
			session:  store.NewSessionStore(api, nil, EventBus.New(), "sid-x"),
			inflight: make(map[string]bool),
		}

		c, rec := testContext(t, "/api/orders")
		c.Set(clientContextKey, client)
		require.NoError(t, Guard(false)(next)(c))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "SESSION_LOADING")
	})
}
