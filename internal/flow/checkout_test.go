package flow

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
	"github.com/talkincode/medshop/internal/store"
)

type checkoutFixture struct {
	srv        *httptest.Server
	api        *backend.Client
	cart       *store.CartStore
	flow       *Checkout
	checkouts  atomic.Int64
	verifies   atomic.Int64
	lastBody   atomic.Value
	failVerify atomic.Bool
	cartJSON   atomic.Value
}

const fixtureCart = `{"cart":{"items":[
	{"_id":"l1","quantity":2,"priceAtOrder":5.5,
	 "medicineId":{"_id":"m1","name":"Aspirin","price":5.5,"stock":9}}
]}}`

func newCheckoutFixture(t *testing.T, withCart bool) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{}
	if withCart {
		f.cartJSON.Store(fixtureCart)
	} else {
		f.cartJSON.Store(`{"cart":{"items":[]}}`)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok","user":{"_id":"u1","name":"Ana","email":"ana@example.com","role":"USER"}}`))
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(f.cartJSON.Load().(string)))
	})
	mux.HandleFunc("/users/profile/addresses", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"addresses":[
			{"_id":"a1","street":"First St","city":"Jakarta"},
			{"_id":"a2","street":"Second St","city":"Bandung"}
		]}`))
	})
	mux.HandleFunc("/cart/checkout", func(w http.ResponseWriter, r *http.Request) {
		f.checkouts.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.lastBody.Store(string(body))
		w.Write([]byte(`{}`))
	})
	mux.HandleFunc("/payments/create-order", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key":"rzp_test","orderId":"pay_1","amount":1100,"currency":"INR","userName":"Ana","userEmail":"ana@example.com"}`))
	})
	mux.HandleFunc("/payments/verify-payment", func(w http.ResponseWriter, r *http.Request) {
		f.verifies.Add(1)
		if f.failVerify.Load() {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"signature mismatch"}`))
			return
		}
		w.Write([]byte(`{}`))
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	f.api = backend.New(f.srv.URL, 5*time.Second)
	bus := EventBus.New()
	session := store.NewSessionStore(f.api, nil, bus, "sid-1")
	f.cart = store.NewCartStore(f.api, session, bus)
	session.Hydrate()
	require.NoError(t, session.Login(context.Background(), "ana@example.com", "secret"))
	f.flow = NewCheckout(f.api, f.cart)
	return f
}

func TestCheckout_EmptyCartRejectedLocally(t *testing.T) {
	f := newCheckoutFixture(t, false)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	err := f.flow.PlaceCOD(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Zero(t, f.checkouts.Load())
	assert.Equal(t, SelectingAddress, f.flow.State())
}

func TestCheckout_NoAddressRejectedLocally(t *testing.T) {
	f := newCheckoutFixture(t, true)
	// addresses never loaded, nothing selected

	err := f.flow.PlaceCOD(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Contains(t, err.Error(), "shipping address")
	assert.Zero(t, f.checkouts.Load())
}

func TestCheckout_LoadAddressesSelectsFirst(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	selected, ok := f.flow.Selected()
	require.True(t, ok)
	assert.Equal(t, "a1", selected.ID)
	assert.Len(t, f.flow.Addresses(), 2)

	require.NoError(t, f.flow.Select("a2"))
	selected, _ = f.flow.Selected()
	assert.Equal(t, "a2", selected.ID)

	err := f.flow.Select("nope")
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
}

func TestCheckout_PlaceCODClearsCart(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))
	require.False(t, f.cart.Empty())

	require.NoError(t, f.flow.PlaceCOD(context.Background()))
	assert.Equal(t, Completed, f.flow.State())
	assert.True(t, f.cart.Empty())
	assert.Equal(t, int64(1), f.checkouts.Load())
	assert.Contains(t, f.lastBody.Load().(string), "First St")
}

func TestCheckout_OnlineVerifyFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	intent, err := f.flow.BeginOnline(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AwaitingPayment, f.flow.State())
	assert.Equal(t, "pay_1", intent.OrderID)

	f.failVerify.Store(true)
	err = f.flow.ConfirmPayment(context.Background(), backend.PaymentConfirmation{
		OrderID: "pay_1", PaymentID: "p1", Signature: "bad",
	})
	require.Error(t, err)
	assert.Equal(t, VerificationFailed, f.flow.State())
	// the charged cart is refreshed from the server, not discarded
	assert.False(t, f.cart.Empty())
	assert.Equal(t, 2, f.cart.Count())
}

func TestCheckout_OnlineVerifySuccessCompletes(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	_, err := f.flow.BeginOnline(context.Background())
	require.NoError(t, err)

	err = f.flow.ConfirmPayment(context.Background(), backend.PaymentConfirmation{
		OrderID: "pay_1", PaymentID: "p1", Signature: "good",
	})
	require.NoError(t, err)
	assert.Equal(t, Completed, f.flow.State())
	assert.True(t, f.cart.Empty())
}

func TestCheckout_ConfirmWithoutPendingPaymentRejected(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	err := f.flow.ConfirmPayment(context.Background(), backend.PaymentConfirmation{OrderID: "pay_1"})
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Zero(t, f.verifies.Load())
}

func TestCheckout_AddAddressSelectsNewEntry(t *testing.T) {
	f := newCheckoutFixture(t, true)
	require.NoError(t, f.flow.LoadAddresses(context.Background()))

	created, err := f.flow.AddAddress(context.Background(), domain.Address{Street: "Second St"})
	require.NoError(t, err)
	// the fake returns the fixed book; the trailing entry is treated as
	// the created one and becomes the selection
	assert.Equal(t, "a2", created.ID)
	selected, _ := f.flow.Selected()
	assert.Equal(t, "a2", selected.ID)
}
