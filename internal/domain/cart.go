package domain

// CartMedicine is the denormalized medicine snapshot the backend embeds
// in each cart line.
type CartMedicine struct {
	ID    string  `json:"_id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Stock int     `json:"stock"`
}

// CartLine is one line of the authoritative server cart. Lines are
// rebuilt wholesale on every refresh, never merged locally.
type CartLine struct {
	ID        string        `json:"_id"`
	Medicine  *CartMedicine `json:"medicineId"`
	Quantity  int           `json:"quantity"`
	UnitPrice float64       `json:"priceAtOrder"`
}

// Subtotal is the line contribution to the cart total, using the price
// captured at add time rather than the live catalog price.
func (l CartLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}
