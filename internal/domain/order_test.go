package domain

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineRef_DecodeShapes(t *testing.T) {
	var r MedicineRef

	require.NoError(t, jsoniter.Unmarshal([]byte(`{"_id":"m1","name":"Aspirin"}`), &r))
	assert.True(t, r.Present)
	assert.Equal(t, "Aspirin", r.DisplayName())

	require.NoError(t, jsoniter.Unmarshal([]byte(`"m2"`), &r))
	assert.True(t, r.Present)
	assert.Equal(t, "m2", r.ID)
	assert.Equal(t, "Unknown medicine", r.DisplayName())

	require.NoError(t, jsoniter.Unmarshal([]byte(`null`), &r))
	assert.False(t, r.Present)
	assert.Equal(t, "Unknown medicine", r.DisplayName())
}

func TestOrder_NormalizeLegacyStatuses(t *testing.T) {
	cases := []struct {
		legacy  string
		method  string
		order   string
		payment string
	}{
		{"Paid", PayMethodOnline, OrderPending, PaymentPaid},
		{"Failed", PayMethodOnline, OrderCancelled, PaymentFailed},
		{"COD", PayMethodCOD, OrderPending, PaymentPending},
		{"", PayMethodCOD, OrderPending, PaymentPending},
		{"Shipped", PayMethodOnline, OrderShipped, PaymentPaid},
		{"Delivered", PayMethodCOD, OrderDelivered, PaymentPending},
	}
	for _, tc := range cases {
		o := Order{LegacyStatus: tc.legacy, PaymentMethod: tc.method}
		o.Normalize()
		assert.Equal(t, tc.order, o.OrderStatus, "legacy %q", tc.legacy)
		assert.Equal(t, tc.payment, o.PaymentStatus, "legacy %q", tc.legacy)
	}
}

func TestOrder_NormalizeKeepsSplitFields(t *testing.T) {
	o := Order{OrderStatus: OrderShipped, PaymentStatus: PaymentPaid, LegacyStatus: "Failed"}
	o.Normalize()
	assert.Equal(t, OrderShipped, o.OrderStatus)
	assert.Equal(t, PaymentPaid, o.PaymentStatus)

	o = Order{OrderStatus: OrderPending}
	o.Normalize()
	assert.Equal(t, PaymentPending, o.PaymentStatus)
}

func TestTimestamp_ParsesCommonFormats(t *testing.T) {
	var v struct {
		At Timestamp `json:"at"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"at":"2024-03-01T10:30:00Z"}`), &v))
	assert.Equal(t, 2024, v.At.Year())

	// unparseable input degrades to the zero time instead of failing
	require.NoError(t, jsoniter.Unmarshal([]byte(`{"at":"not a date"}`), &v))
	assert.True(t, v.At.IsZero())
}
