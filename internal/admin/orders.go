package admin

import (
	"context"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// RefreshOrders re-fetches all orders. Orders with dangling medicine
// references are kept; the view renders a placeholder name for them.
func (c *Console) RefreshOrders(ctx context.Context) error {
	orders, err := c.api.AdminOrders(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.orders = orders
	c.mu.Unlock()
	return nil
}

// UpdateOrderStatus sets the fulfilment status of one order. The
// payment status is never client-settable.
func (c *Console) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !domain.ValidOrderStatus(status) {
		return backend.Validationf("invalid order status %q", status)
	}
	if err := c.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}
	return c.RefreshOrders(ctx)
}
