package admin

import (
	"context"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// RefreshMedicines re-fetches the full catalog for the management view.
func (c *Console) RefreshMedicines(ctx context.Context) error {
	medicines, _, err := c.api.Medicines(ctx, 1, "")
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.medicines = medicines
	c.mu.Unlock()
	return nil
}

// SaveMedicine creates or updates keyed on whether the entity carries
// an id, then re-fetches the list unconditionally.
func (c *Console) SaveMedicine(ctx context.Context, m domain.Medicine) error {
	var err error
	if m.ID == "" {
		_, err = c.api.CreateMedicine(ctx, m)
	} else {
		_, err = c.api.UpdateMedicine(ctx, m)
	}
	if err != nil {
		return err
	}
	return c.RefreshMedicines(ctx)
}

// DeleteMedicine requires an explicit confirmation from the human
// before any request fires.
func (c *Console) DeleteMedicine(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return backend.Validationf("delete not confirmed")
	}
	if err := c.api.DeleteMedicine(ctx, id); err != nil {
		return err
	}
	return c.RefreshMedicines(ctx)
}
