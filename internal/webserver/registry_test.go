package webserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/talkincode/medshop/config"
)

type stubAppCtx struct {
	cfg  *config.AppConfig
	next int
}

func (s *stubAppCtx) Config() *config.AppConfig { return s.cfg }
func (s *stubAppCtx) Storage() *bolt.DB         { return nil }
func (s *stubAppCtx) Scheduler() *cron.Cron     { return cron.New() }
func (s *stubAppCtx) StartBackgroundJobs()      {}
func (s *stubAppCtx) Release()                  {}
func (s *stubAppCtx) NextID() string {
	s.next++
	return fmt.Sprintf("sid-%d", s.next)
}

func newStubAppCtx(t *testing.T) *stubAppCtx {
	t.Helper()
	// login answers a plain user; everything else an empty object
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/login" {
			w.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Plain User","email":"x@example.com","role":"USER"}}`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultAppConfig
	cfg.Backend.BaseURL = srv.URL
	return &stubAppCtx{cfg: &cfg}
}

func TestRegistry_GetCreatesHydratedClient(t *testing.T) {
	reg := NewRegistry(newStubAppCtx(t))

	c := reg.Get("sid-1")
	require.NotNil(t, c)
	assert.True(t, c.Session().Ready())
	assert.Nil(t, c.Session().Identity())
	assert.Equal(t, 1, reg.Size())

	// same sid returns the same client
	assert.Same(t, c, reg.Get("sid-1"))
	assert.Equal(t, 1, reg.Size())
}

func TestRegistry_SweepDropsIdleClients(t *testing.T) {
	reg := NewRegistry(newStubAppCtx(t))

	stale := reg.Get("sid-stale")
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-2 * time.Hour)
	stale.mu.Unlock()

	reg.Get("sid-live")
	require.Equal(t, 2, reg.Size())

	reg.Sweep(time.Hour)
	assert.Equal(t, 1, reg.Size())
	assert.NotSame(t, stale, reg.Get("sid-stale"))
}

func TestClient_TryAcquireRefusesDuplicate(t *testing.T) {
	reg := NewRegistry(newStubAppCtx(t))
	c := reg.Get("sid-1")

	require.True(t, c.TryAcquire("cart:m1"))
	assert.False(t, c.TryAcquire("cart:m1"))
	assert.True(t, c.TryAcquire("cart:m2"))

	c.Release("cart:m1")
	assert.True(t, c.TryAcquire("cart:m1"))
}

func TestClient_CheckoutLazyAndResettable(t *testing.T) {
	reg := NewRegistry(newStubAppCtx(t))
	c := reg.Get("sid-1")

	first := c.Checkout()
	assert.Same(t, first, c.Checkout())

	c.ResetCheckout()
	assert.NotSame(t, first, c.Checkout())
}
