package backend

import (
	"github.com/talkincode/medshop/internal/domain"
)

// Response contracts, one explicit shape per endpoint. The decode layer
// never guesses by field presence; a contract change is a new struct.

type loginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type profileResponse struct {
	User domain.User `json:"user"`
}

type addressesResponse struct {
	Addresses []domain.Address `json:"addresses"`
}

type medicineListResponse struct {
	Medicines []domain.Medicine `json:"medicines"`
	Total     int64             `json:"total"`
}

type cartResponse struct {
	Cart struct {
		Items []domain.CartLine `json:"items"`
	} `json:"cart"`
}

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// PaymentIntent is the gateway hand-off returned by the backend when an
// online payment order is created. The third-party payment UI consumes
// it out-of-band; this application only relays it.
type PaymentIntent struct {
	Key       string `json:"key"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// PaymentConfirmation carries the gateway callback identifiers back to
// the backend for verification.
type PaymentConfirmation struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

// errorBody is the loosely shaped failure payload different backend
// versions emit; decoded weakly via mapstructure.
type errorBody struct {
	Message string `mapstructure:"message"`
	Error   string `mapstructure:"error"`
}
