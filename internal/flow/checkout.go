package flow

import (
	"context"
	"sync"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/store"
)

// CheckoutState tracks the checkout state machine:
//
//	selectingAddress -> placingOrder -> (completed | failed)
//
// with the online-payment branch
//
//	placingOrder -> awaitingPayment -> (completed | verificationFailed)
type CheckoutState int

const (
	SelectingAddress CheckoutState = iota
	PlacingOrder
	AwaitingPayment
	Completed
	CheckoutFailed
	VerificationFailed
)

func (s CheckoutState) String() string {
	switch s {
	case PlacingOrder:
		return "placingOrder"
	case AwaitingPayment:
		return "awaitingPayment"
	case Completed:
		return "completed"
	case CheckoutFailed:
		return "failed"
	case VerificationFailed:
		return "verificationFailed"
	default:
		return "selectingAddress"
	}
}

// Checkout drives one checkout attempt over the cart store. Address
// selection and a non-empty cart are enforced locally before anything
// touches the network.
type Checkout struct {
	mu   sync.Mutex
	api  *backend.Client
	cart *store.CartStore

	state     CheckoutState
	addresses []domain.Address
	selected  string
}

func NewCheckout(api *backend.Client, cart *store.CartStore) *Checkout {
	return &Checkout{api: api, cart: cart, state: SelectingAddress}
}

// LoadAddresses fetches the address book and pre-selects the first
// entry, matching the storefront's default.
func (f *Checkout) LoadAddresses(ctx context.Context) error {
	addrs, err := f.api.Addresses(ctx)
	if err != nil {
		return backend.Wrap(err, "load addresses")
	}
	f.mu.Lock()
	f.addresses = addrs
	if f.selected == "" && len(addrs) > 0 {
		f.selected = addrs[0].ID
	}
	f.mu.Unlock()
	return nil
}

// AddAddress appends a new address book entry and selects it.
func (f *Checkout) AddAddress(ctx context.Context, addr domain.Address) (domain.Address, error) {
	created, err := f.api.CreateAddress(ctx, addr)
	if err != nil {
		return domain.Address{}, err
	}
	f.mu.Lock()
	f.addresses = append(f.addresses, created)
	f.selected = created.ID
	f.mu.Unlock()
	return created, nil
}

// Select picks a shipping address by id.
func (f *Checkout) Select(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.addresses {
		if a.ID == id {
			f.selected = id
			return nil
		}
	}
	return backend.Validationf("invalid address selected")
}

func (f *Checkout) precheck() (domain.Address, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cart.Empty() {
		return domain.Address{}, backend.Validationf("cart is empty")
	}
	if f.selected == "" {
		return domain.Address{}, backend.Validationf("please select a shipping address")
	}
	for _, a := range f.addresses {
		if a.ID == f.selected {
			f.state = PlacingOrder
			return a, nil
		}
	}
	return domain.Address{}, backend.Validationf("invalid address selected")
}

func (f *Checkout) setState(s CheckoutState) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// PlaceCOD places a cash-on-delivery order: a single request is both
// order creation and terminal success. The cart is cleared locally on
// success.
func (f *Checkout) PlaceCOD(ctx context.Context) error {
	addr, err := f.precheck()
	if err != nil {
		return err
	}
	if err := f.api.Checkout(ctx, addr); err != nil {
		f.setState(CheckoutFailed)
		return err
	}
	f.cart.Clear()
	f.setState(Completed)
	return nil
}

// BeginOnline creates the payment order and hands the intent to the
// out-of-band gateway UI. The flow then waits for ConfirmPayment.
func (f *Checkout) BeginOnline(ctx context.Context) (backend.PaymentIntent, error) {
	if _, err := f.precheck(); err != nil {
		return backend.PaymentIntent{}, err
	}
	intent, err := f.api.CreatePaymentOrder(ctx)
	if err != nil {
		f.setState(CheckoutFailed)
		return backend.PaymentIntent{}, err
	}
	f.setState(AwaitingPayment)
	return intent, nil
}

// ConfirmPayment completes the online branch from the gateway callback.
// A charged payment that fails verification must not lose the user's
// cart: on failure the cart is refreshed from the server, never
// cleared, so the items remain for a retry.
func (f *Checkout) ConfirmPayment(ctx context.Context, conf backend.PaymentConfirmation) error {
	f.mu.Lock()
	if f.state != AwaitingPayment {
		f.mu.Unlock()
		return backend.Validationf("no payment awaiting confirmation")
	}
	var addr domain.Address
	for _, a := range f.addresses {
		if a.ID == f.selected {
			addr = a
		}
	}
	f.mu.Unlock()

	if err := f.api.VerifyPayment(ctx, conf, addr); err != nil {
		f.setState(VerificationFailed)
		_ = f.cart.Refresh(ctx)
		return err
	}
	f.cart.Clear()
	f.setState(Completed)
	return nil
}

func (f *Checkout) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Checkout) Addresses() []domain.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Address, len(f.addresses))
	copy(out, f.addresses)
	return out
}

// Selected returns the currently selected address, if any.
func (f *Checkout) Selected() (domain.Address, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.addresses {
		if a.ID == f.selected {
			return a, true
		}
	}
	return domain.Address{}, false
}
