package admin

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/store"
)

// Console is the admin management surface: three independent
// list+mutate loops over medicines, orders and users. Every mutation is
// followed by an unconditional list re-fetch; there is no optimistic
// patching of local lists.
type Console struct {
	api     *backend.Client
	session *store.SessionStore

	mu        sync.RWMutex
	medicines []domain.Medicine
	orders    []domain.Order
	users     []domain.User
}

func NewConsole(api *backend.Client, session *store.SessionStore) *Console {
	return &Console{api: api, session: session}
}

// RefreshAll fans the three list fetches out on a worker pool and waits
// for the lot; the first failure wins.
func (c *Console) RefreshAll(ctx context.Context) error {
	pool, err := ants.NewPool(3)
	if err != nil {
		return err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	run := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				zap.L().Warn("admin refresh failed",
					zap.String("collection", name), zap.Error(err))
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
		}
	}

	run("medicines", c.RefreshMedicines)
	run("orders", c.RefreshOrders)
	run("users", c.RefreshUsers)
	wg.Wait()
	return firstErr
}

func (c *Console) Medicines() []domain.Medicine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Medicine, len(c.medicines))
	copy(out, c.medicines)
	return out
}

func (c *Console) Orders() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Console) Users() []domain.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.User, len(c.users))
	copy(out, c.users)
	return out
}
