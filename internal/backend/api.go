package backend

import (
	"context"

	"github.com/guonaihong/gout"
	"github.com/talkincode/medshop/internal/domain"
)

// Users and authentication

func (c *Client) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	var resp loginResponse
	err := c.call(ctx, "POST", "/users/login",
		nil, gout.H{"email": email, "password": password}, &resp)
	if err != nil {
		return "", domain.User{}, err
	}
	return resp.Token, resp.User, nil
}

// Register requests account creation; the backend dispatches an OTP.
// Re-submitting the identical payload re-sends the OTP.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.call(ctx, "POST", "/users/register",
		nil, gout.H{"name": name, "email": email, "password": password}, nil)
}

func (c *Client) VerifyOtp(ctx context.Context, email, otp string) error {
	return c.call(ctx, "POST", "/users/verify-otp",
		nil, gout.H{"email": email, "otp": otp}, nil)
}

func (c *Client) Profile(ctx context.Context) (domain.User, error) {
	var resp profileResponse
	err := c.call(ctx, "GET", "/users/profile", nil, nil, &resp)
	return resp.User, err
}

func (c *Client) UpdateProfile(ctx context.Context, name string) (domain.User, error) {
	var resp profileResponse
	err := c.call(ctx, "PUT", "/users/profile", nil, gout.H{"name": name}, &resp)
	return resp.User, err
}

func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	return c.call(ctx, "PUT", "/users/profile/change-password",
		nil, gout.H{"currentPassword": current, "newPassword": next}, nil)
}

// Address book

func (c *Client) Addresses(ctx context.Context) ([]domain.Address, error) {
	var resp addressesResponse
	err := c.call(ctx, "GET", "/users/profile/addresses", nil, nil, &resp)
	return resp.Addresses, err
}

// CreateAddress appends an entry and returns the created one. The
// backend answers with the full updated collection; the newest entry is
// the trailing element, extracted here once so no call site ever
// indexes the array.
func (c *Client) CreateAddress(ctx context.Context, addr domain.Address) (domain.Address, error) {
	var resp addressesResponse
	err := c.call(ctx, "POST", "/users/profile/addresses", nil, addr, &resp)
	if err != nil {
		return domain.Address{}, err
	}
	if len(resp.Addresses) == 0 {
		return domain.Address{}, &Error{Kind: KindUnknown, Message: "backend returned an empty address book"}
	}
	return resp.Addresses[len(resp.Addresses)-1], nil
}

func (c *Client) DeleteAddress(ctx context.Context, id string) error {
	return c.call(ctx, "DELETE", "/users/profile/addresses/"+id, nil, nil, nil)
}

// Catalog

func (c *Client) Medicines(ctx context.Context, page int, search string) ([]domain.Medicine, int64, error) {
	var resp medicineListResponse
	err := c.call(ctx, "GET", "/medicines",
		gout.H{"page": page, "search": search}, nil, &resp)
	return resp.Medicines, resp.Total, err
}

func (c *Client) Medicine(ctx context.Context, id string) (domain.Medicine, error) {
	var m domain.Medicine
	err := c.call(ctx, "GET", "/medicines/"+id, nil, nil, &m)
	return m, err
}

func (c *Client) CreateMedicine(ctx context.Context, m domain.Medicine) (domain.Medicine, error) {
	var created domain.Medicine
	err := c.call(ctx, "POST", "/medicines", nil, m, &created)
	return created, err
}

func (c *Client) UpdateMedicine(ctx context.Context, m domain.Medicine) (domain.Medicine, error) {
	var updated domain.Medicine
	err := c.call(ctx, "PUT", "/medicines/"+m.ID, nil, m, &updated)
	return updated, err
}

func (c *Client) DeleteMedicine(ctx context.Context, id string) error {
	return c.call(ctx, "DELETE", "/medicines/"+id, nil, nil, nil)
}

// Cart and checkout

func (c *Client) Cart(ctx context.Context) ([]domain.CartLine, error) {
	var resp cartResponse
	err := c.call(ctx, "GET", "/cart", nil, nil, &resp)
	return resp.Cart.Items, err
}

// CartAdd sends a relative quantity change; negative deltas decrease.
func (c *Client) CartAdd(ctx context.Context, medicineID string, delta int) error {
	return c.call(ctx, "POST", "/cart/add",
		nil, gout.H{"medicineId": medicineID, "quantity": delta}, nil)
}

func (c *Client) CartRemove(ctx context.Context, medicineID string) error {
	return c.call(ctx, "DELETE", "/cart/remove/"+medicineID, nil, nil, nil)
}

func (c *Client) Checkout(ctx context.Context, addr domain.Address) error {
	return c.call(ctx, "POST", "/cart/checkout", nil, gout.H{"address": addr}, nil)
}

// Payments

func (c *Client) CreatePaymentOrder(ctx context.Context) (PaymentIntent, error) {
	var intent PaymentIntent
	err := c.call(ctx, "POST", "/payments/create-order", nil, nil, &intent)
	return intent, err
}

func (c *Client) VerifyPayment(ctx context.Context, conf PaymentConfirmation, addr domain.Address) error {
	return c.call(ctx, "POST", "/payments/verify-payment",
		nil, gout.H{
			"orderId":   conf.OrderID,
			"paymentId": conf.PaymentID,
			"signature": conf.Signature,
			"address":   addr,
		}, nil)
}

// Orders

func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	if err := c.call(ctx, "GET", "/orders/my", nil, nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Orders {
		resp.Orders[i].Normalize()
	}
	return resp.Orders, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]domain.Order, error) {
	var resp ordersResponse
	if err := c.call(ctx, "GET", "/admin/orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Orders {
		resp.Orders[i].Normalize()
	}
	return resp.Orders, nil
}

// UpdateOrderStatus sets the fulfilment status only; the payment status
// is never client-settable.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	return c.call(ctx, "PUT", "/admin/orders/"+orderID,
		nil, gout.H{"orderStatus": status}, nil)
}

// Admin users

func (c *Client) AdminUsers(ctx context.Context) ([]domain.User, error) {
	var resp usersResponse
	err := c.call(ctx, "GET", "/admin/users", nil, nil, &resp)
	return resp.Users, err
}

func (c *Client) UpdateUserRole(ctx context.Context, id, role string) error {
	return c.call(ctx, "PUT", "/admin/users/"+id, nil, gout.H{"role": role}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, "DELETE", "/admin/users/"+id, nil, nil, nil)
}

// Dashboard

func (c *Client) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	err := c.call(ctx, "GET", "/admin/dashboard", nil, nil, &stats)
	return stats, err
}
