package domain

import (
	jsoniter "github.com/json-iterator/go"
)

// Order lifecycle. The fulfilment phase and the payment phase are
// tracked independently; the client never sets the payment status.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"

	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentFailed  = "Failed"

	PayMethodCOD    = "COD"
	PayMethodOnline = "ONLINE"
)

// OrderStatuses lists the fulfilment states an admin may set.
var OrderStatuses = []string{
	OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled,
}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// MedicineRef is the denormalized medicine reference inside an order.
// The backend serializes it as a populated object, a bare id string, or
// null when the medicine was deleted. Consumers must handle the absent
// case explicitly.
type MedicineRef struct {
	ID   string
	Name string
	// Present reports whether the referenced medicine still exists.
	Present bool
}

func (r *MedicineRef) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*r = MedicineRef{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		// bare id: the reference exists but was not populated
		var id string
		if err := jsoniter.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = MedicineRef{ID: id, Present: id != ""}
		return nil
	}
	var obj struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := jsoniter.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = MedicineRef{ID: obj.ID, Name: obj.Name, Present: obj.ID != ""}
	return nil
}

// DisplayName renders a placeholder when the medicine no longer exists
// so order views never break on dangling references.
func (r MedicineRef) DisplayName() string {
	if !r.Present || r.Name == "" {
		return "Unknown medicine"
	}
	return r.Name
}

// UserRef mirrors MedicineRef for the ordering user.
type UserRef struct {
	ID      string
	Name    string
	Email   string
	Present bool
}

func (r *UserRef) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*r = UserRef{}
		return nil
	}
	if len(s) > 0 && s[0] == '"' {
		var id string
		if err := jsoniter.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = UserRef{ID: id, Present: id != ""}
		return nil
	}
	var obj struct {
		ID    string `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := jsoniter.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = UserRef{ID: obj.ID, Name: obj.Name, Email: obj.Email, Present: obj.ID != ""}
	return nil
}

// Order is a placed order. The split orderStatus/paymentStatus pair is
// canonical; Normalize maps the backend's legacy combined status field
// into the pair so both backend generations decode to one shape.
type Order struct {
	ID            string      `json:"_id"`
	User          UserRef     `json:"userId"`
	Medicine      MedicineRef `json:"medicineId"`
	Quantity      int         `json:"quantity"`
	PriceAtOrder  float64     `json:"priceAtOrder"`
	PaymentMethod string      `json:"paymentMethod"`
	OrderStatus   string      `json:"orderStatus"`
	PaymentStatus string      `json:"paymentStatus"`
	PaymentID     string      `json:"paymentId,omitempty"`
	Address       Address     `json:"address"`
	CreatedAt     Timestamp   `json:"createdAt"`

	// LegacyStatus carries the combined status emitted by older backend
	// deployments. Consumers read OrderStatus/PaymentStatus only.
	LegacyStatus string `json:"status,omitempty"`
}

// Normalize fills the split status pair from LegacyStatus when the
// backend did not send the split fields.
func (o *Order) Normalize() {
	if o.OrderStatus != "" {
		if o.PaymentStatus == "" {
			o.PaymentStatus = PaymentPending
		}
		return
	}
	switch o.LegacyStatus {
	case "Paid":
		o.OrderStatus = OrderPending
		o.PaymentStatus = PaymentPaid
	case "Failed":
		o.OrderStatus = OrderCancelled
		o.PaymentStatus = PaymentFailed
	case "COD", "":
		o.OrderStatus = OrderPending
		o.PaymentStatus = PaymentPending
	default:
		// legacy fulfilment words map straight across
		o.OrderStatus = o.LegacyStatus
		if o.PaymentMethod == PayMethodOnline {
			o.PaymentStatus = PaymentPaid
		} else {
			o.PaymentStatus = PaymentPending
		}
	}
}

// Total is the order line total at the captured price.
func (o Order) Total() float64 {
	return o.PriceAtOrder * float64(o.Quantity)
}
