package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/medshop/internal/backend"
)

func TestOrders_DanglingReferencesFiltered(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders/my", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders":[
			{"_id":"o1","orderStatus":"Pending","quantity":1,
			 "medicineId":{"_id":"m1","name":"Aspirin"},"userId":{"_id":"u1","name":"Ana"}},
			{"_id":"o2","orderStatus":"Pending","quantity":1,
			 "medicineId":null,"userId":{"_id":"u1","name":"Ana"}},
			{"_id":"o3","orderStatus":"Pending","quantity":1,
			 "medicineId":{"_id":"m2","name":"Ibuprofen"},"userId":null}
		]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	q := NewOrders(backend.New(srv.URL, 5*time.Second))
	q.Fetch(context.Background())

	state, orders, _ := q.Snapshot()
	require.Equal(t, Ready, state)
	require.Len(t, orders, 1)
	assert.Equal(t, "o1", orders[0].ID)
}

func TestOrders_FailureHoldsErrorState(t *testing.T) {
	q := NewOrders(backend.New("http://127.0.0.1:1", time.Second))
	q.Fetch(context.Background())

	state, _, errMsg := q.Snapshot()
	assert.Equal(t, Failed, state)
	assert.NotEmpty(t, errMsg)
}
