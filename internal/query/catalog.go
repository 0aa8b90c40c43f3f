package query

import (
	"context"
	"sync"

	"github.com/talkincode/medshop/internal/backend"
	"github.com/talkincode/medshop/internal/domain"
)

// MedicineList is the paginated, searchable catalog listing. The search
// term is committed explicitly (not on every keystroke): the live input
// belongs to the view, only Commit moves it into the query and resets
// pagination to the first page. No caching across inputs; every input
// change re-fetches.
type MedicineList struct {
	res resource[[]domain.Medicine]
	api *backend.Client

	mu        sync.Mutex
	page      int
	committed string
	total     int64
}

func NewMedicineList(api *backend.Client) *MedicineList {
	return &MedicineList{api: api, page: 1}
}

// Fetch re-runs the query for the current page and committed search.
// The inputs and the generation are taken in one critical section so a
// fetch can never win the generation race carrying another fetch's
// inputs.
func (q *MedicineList) Fetch(ctx context.Context) {
	q.mu.Lock()
	page, search := q.page, q.committed
	gen := q.res.begin()
	q.mu.Unlock()
	medicines, total, err := q.api.Medicines(ctx, page, search)
	if err != nil {
		q.res.fail(gen, err.Error())
		return
	}
	if q.res.complete(gen, medicines) {
		q.mu.Lock()
		q.total = total
		q.mu.Unlock()
	}
}

// SetPage navigates and re-fetches.
func (q *MedicineList) SetPage(ctx context.Context, page int) {
	if page < 1 {
		page = 1
	}
	q.mu.Lock()
	q.page = page
	q.mu.Unlock()
	q.Fetch(ctx)
}

// Commit replaces the committed search term, resets to the first page
// and re-fetches.
func (q *MedicineList) Commit(ctx context.Context, search string) {
	q.mu.Lock()
	q.committed = search
	q.page = 1
	q.mu.Unlock()
	q.Fetch(ctx)
}

func (q *MedicineList) Snapshot() (State, []domain.Medicine, string) {
	return q.res.snapshot()
}

func (q *MedicineList) Page() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.page
}

func (q *MedicineList) Query() string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.committed
}

func (q *MedicineList) Total() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.total
}

// MedicineDetail fetches a single catalog entry. Changing the id
// re-enters loading; a stale response for a previous id is discarded.
type MedicineDetail struct {
	res resource[domain.Medicine]
	api *backend.Client
}

func NewMedicineDetail(api *backend.Client) *MedicineDetail {
	return &MedicineDetail{api: api}
}

func (q *MedicineDetail) Load(ctx context.Context, id string) {
	gen := q.res.begin()
	m, err := q.api.Medicine(ctx, id)
	if err != nil {
		q.res.fail(gen, err.Error())
		return
	}
	q.res.complete(gen, m)
}

func (q *MedicineDetail) Snapshot() (State, domain.Medicine, string) {
	return q.res.snapshot()
}
