package query

import (
	"context"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// Orders is the current user's order history. Orders whose denormalized
// medicine or user reference no longer resolves are dropped from the
// view slice instead of raising an error.
type Orders struct {
	res resource[[]domain.Order]
	api *backend.Client
}

func NewOrders(api *backend.Client) *Orders {
	return &Orders{api: api}
}

func (q *Orders) Fetch(ctx context.Context) {
	gen := q.res.begin()
	orders, err := q.api.MyOrders(ctx)
	if err != nil {
		q.res.fail(gen, err.Error())
		return
	}
	kept := orders[:0]
	for _, o := range orders {
		if !o.Medicine.Present || !o.User.Present {
			continue
		}
		kept = append(kept, o)
	}
	q.res.complete(gen, kept)
}

// Refetch re-runs the collection fetch, exposed for manual refresh.
func (q *Orders) Refetch(ctx context.Context) {
	q.Fetch(ctx)
}

func (q *Orders) Snapshot() (State, []domain.Order, string) {
	return q.res.snapshot()
}
