package webserver

import (
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/admin"
	"github.com/talkincode/medshop/internal/app"
	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/flow"
	"github.com/talkincode/medshop/internal/query"
	"github.com/talkincode/medshop/internal/store"
)

// Client is the full per-browser view state: the stores, query
// resources and flows of one visitor, created lazily on first contact
// and swept after the idle TTL. Stores are injected explicitly here;
// nothing is a module-level singleton.
type Client struct {
	sid string
	api *backend.Client
	bus EventBus.Bus

	session      *store.SessionStore
	cart         *store.CartStore
	catalog      *query.MedicineList
	detail       *query.MedicineDetail
	orders       *query.Orders
	dashboard    *query.Dashboard
	registration *flow.Registration
	console      *admin.Console

	mu       sync.Mutex
	checkout *flow.Checkout
	inflight map[string]bool
	lastSeen time.Time
}

func newClient(appCtx app.AppContext, sid string) *Client {
	cfg := appCtx.Config()
	api := backend.New(cfg.Backend.BaseURL, time.Duration(cfg.Backend.Timeout)*time.Second)
	api.SetDebug(cfg.System.Debug)

	bus := EventBus.New()
	sess := store.NewSessionStore(api, appCtx.Storage(), bus, sid)
	cart := store.NewCartStore(api, sess, bus)

	c := &Client{
		sid:          sid,
		api:          api,
		bus:          bus,
		session:      sess,
		cart:         cart,
		catalog:      query.NewMedicineList(api),
		detail:       query.NewMedicineDetail(api),
		orders:       query.NewOrders(api),
		dashboard:    query.NewDashboard(api),
		registration: flow.NewRegistration(api),
		console:      admin.NewConsole(api, sess),
		inflight:     make(map[string]bool),
		lastSeen:     time.Now(),
	}

	// hydration completes before any handler observes the client
	sess.Hydrate()
	return c
}

func (c *Client) Session() *store.SessionStore    { return c.session }
func (c *Client) Cart() *store.CartStore          { return c.cart }
func (c *Client) Catalog() *query.MedicineList    { return c.catalog }
func (c *Client) Detail() *query.MedicineDetail   { return c.detail }
func (c *Client) Orders() *query.Orders           { return c.orders }
func (c *Client) Dashboard() *query.Dashboard     { return c.dashboard }
func (c *Client) Registration() *flow.Registration { return c.registration }
func (c *Client) Console() *admin.Console         { return c.console }
func (c *Client) API() *backend.Client            { return c.api }

// Checkout returns the active checkout flow, creating a fresh one when
// none is in progress or the previous attempt reached a terminal state.
func (c *Client) Checkout() *flow.Checkout {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.checkout == nil {
		c.checkout = flow.NewCheckout(c.api, c.cart)
	}
	return c.checkout
}

// ResetCheckout discards the current checkout attempt.
func (c *Client) ResetCheckout() {
	c.mu.Lock()
	c.checkout = nil
	c.mu.Unlock()
}

// TryAcquire marks a per-line mutation in flight, refusing a duplicate
// concurrent mutation on the same key. Release undoes it.
func (c *Client) TryAcquire(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] {
		return false
	}
	c.inflight[key] = true
	return true
}

func (c *Client) Release(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}

func (c *Client) touch() {
	c.mu.Lock()
	c.lastSeen = time.Now()
	c.mu.Unlock()
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

// Registry maps browser session ids to their UI clients.
type Registry struct {
	mu      sync.Mutex
	appCtx  app.AppContext
	clients map[string]*Client
}

func NewRegistry(appCtx app.AppContext) *Registry {
	return &Registry{appCtx: appCtx, clients: make(map[string]*Client)}
}

// Get returns the client for sid, creating and hydrating it on first
// use.
func (r *Registry) Get(sid string) *Client {
	r.mu.Lock()
	c, ok := r.clients[sid]
	if !ok {
		c = newClient(r.appCtx, sid)
		r.clients[sid] = c
	}
	r.mu.Unlock()
	c.touch()
	return c
}

// Sweep drops clients idle longer than ttl. Their durable session state
// stays in the local store, so a returning browser re-hydrates.
func (r *Registry) Sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for sid, c := range r.clients {
		if c.idleSince().Before(cutoff) {
			delete(r.clients, sid)
			removed++
		}
	}
	if removed > 0 {
		zap.S().Infof("swept %d idle browser sessions, %d live", removed, len(r.clients))
	}
}

// Size reports the number of live clients.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
