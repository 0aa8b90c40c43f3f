package query

import (
	"context"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// Overview is the admin dashboard view: the backend aggregate plus the
// average order value computed locally over the admin order list.
type Overview struct {
	domain.DashboardStats
	AvgOrderValue float64 `json:"avgOrderValue"`
}

// Dashboard fetches the admin aggregate and the order list in parallel;
// both are read-only.
type Dashboard struct {
	res resource[Overview]
	api *backend.Client
}

func NewDashboard(api *backend.Client) *Dashboard {
	return &Dashboard{api: api}
}

func (q *Dashboard) Fetch(ctx context.Context) {
	gen := q.res.begin()

	var (
		overview Overview
		orders   []domain.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := q.api.Dashboard(gctx)
		if err == nil {
			overview.DashboardStats = s
		}
		return err
	})
	g.Go(func() error {
		o, err := q.api.AdminOrders(gctx)
		if err == nil {
			orders = o
		}
		return err
	})
	if err := g.Wait(); err != nil {
		q.res.fail(gen, err.Error())
		return
	}

	if len(orders) > 0 {
		totals := make([]float64, 0, len(orders))
		for _, o := range orders {
			totals = append(totals, o.Total())
		}
		if mean, err := stats.Mean(totals); err == nil {
			overview.AvgOrderValue = mean
		}
	}
	q.res.complete(gen, overview)
}

func (q *Dashboard) Snapshot() (State, Overview, string) {
	return q.res.snapshot()
}
