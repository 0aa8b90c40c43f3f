package admin

import (
	"context"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// RefreshUsers re-fetches the user list.
func (c *Console) RefreshUsers(ctx context.Context) error {
	users, err := c.api.AdminUsers(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.users = users
	c.mu.Unlock()
	return nil
}

// CanDeleteUser is the view-side guidance for exposing a delete action:
// admin accounts are never deletable from the console. The backend is
// the real authority.
func (c *Console) CanDeleteUser(u domain.User) bool {
	return !u.IsAdmin()
}

// DeleteUser removes an account after explicit confirmation. Admin rows
// are rejected locally, which also covers self-deletion.
func (c *Console) DeleteUser(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return backend.Validationf("delete not confirmed")
	}
	c.mu.RLock()
	for _, u := range c.users {
		if u.ID == id && u.IsAdmin() {
			c.mu.RUnlock()
			return backend.Validationf("admin accounts cannot be deleted")
		}
	}
	c.mu.RUnlock()
	if me := c.session.Identity(); me != nil && me.ID == id {
		return backend.Validationf("admin accounts cannot be deleted")
	}
	if err := c.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	return c.RefreshUsers(ctx)
}

// UpdateUserRole changes an account's role, then re-fetches.
func (c *Console) UpdateUserRole(ctx context.Context, id, role string) error {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return backend.Validationf("invalid role %q", role)
	}
	if err := c.api.UpdateUserRole(ctx, id, role); err != nil {
		return err
	}
	return c.RefreshUsers(ctx)
}
