package domain

// Medicine is a catalog entry. Read-only from the storefront's
// perspective except through the admin console.
type Medicine struct {
	ID          string    `json:"_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	CreatedAt   Timestamp `json:"createdAt,omitempty"`
	UpdatedAt   Timestamp `json:"updatedAt,omitempty"`
}

func (m Medicine) InStock() bool {
	return m.Stock > 0
}
