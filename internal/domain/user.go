package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the authenticated identity as the backend reports it.
// The role is immutable for the lifetime of a session.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Verified  bool      `json:"isVerified"`
	Addresses []Address `json:"addresses,omitempty"`
	CreatedAt Timestamp `json:"createdAt,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Address is one entry of a user's address book. The backend owns the
// collection; entries are append-only from this application's view.
type Address struct {
	ID         string `json:"_id,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}
