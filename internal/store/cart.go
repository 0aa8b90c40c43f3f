package store

import (
	"context"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// CartStore mirrors the backend's authoritative cart for one session.
// Every mutation is a fire-and-refetch pair: the server snapshot after
// the mutation replaces local state wholesale, so local quantities and
// prices never drift from server truth.
type CartStore struct {
	mu      sync.RWMutex
	api     *backend.Client
	session *SessionStore
	lines   []domain.CartLine
}

// NewCartStore subscribes the store to identity changes: login, logout
// and hydration each trigger a refresh.
func NewCartStore(api *backend.Client, session *SessionStore, bus EventBus.Bus) *CartStore {
	c := &CartStore{api: api, session: session}
	_ = bus.Subscribe(TopicSessionChanged, func(user *domain.User) {
		if err := c.Refresh(context.Background()); err != nil {
			zap.L().Warn("cart refresh on session change failed", zap.Error(err))
		}
	})
	return c
}

// Refresh replaces local state with the authoritative cart. For an
// unauthenticated session it empties local state without a request.
// On failure local state is untouched.
func (c *CartStore) Refresh(ctx context.Context) error {
	if c.session.Identity() == nil {
		c.mu.Lock()
		c.lines = nil
		c.mu.Unlock()
		return nil
	}
	lines, err := c.api.Cart(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
	return nil
}

// Add sends a relative quantity change (negative to decrease) and then
// refreshes. A positive delta that would exceed the known stock of an
// existing line is rejected locally before any request, leaving the
// cart exactly as it was.
func (c *CartStore) Add(ctx context.Context, medicineID string, delta int) error {
	if delta > 0 {
		if line, ok := c.Line(medicineID); ok && line.Medicine != nil {
			if line.Quantity+delta > line.Medicine.Stock {
				return backend.Validationf("only %d available", line.Medicine.Stock)
			}
		}
	}
	if err := c.api.CartAdd(ctx, medicineID, delta); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Remove deletes the line for a medicine, then refreshes.
func (c *CartStore) Remove(ctx context.Context, medicineID string) error {
	if err := c.api.CartRemove(ctx, medicineID); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Clear resets local state only, used right after checkout; the next
// identity-driven refresh restores server truth.
func (c *CartStore) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the current cart lines.
func (c *CartStore) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line finds the cart line for a medicine.
func (c *CartStore) Line(medicineID string) (domain.CartLine, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, l := range c.lines {
		if l.Medicine != nil && l.Medicine.ID == medicineID {
			return l, true
		}
	}
	return domain.CartLine{}, false
}

// Count is the sum of line quantities, recomputed on every read.
func (c *CartStore) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Total is the cart value at captured prices.
func (c *CartStore) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var sum float64
	for _, l := range c.lines {
		sum += l.Subtotal()
	}
	return sum
}

// Empty reports whether the cart has no lines.
func (c *CartStore) Empty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}
