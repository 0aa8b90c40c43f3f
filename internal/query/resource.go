package query

import "sync"

// State is the lifecycle of an asynchronous view resource.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// resource is the shared state machine behind every query: it moves
// idle -> loading -> (ready | failed) and re-enters loading whenever the
// key inputs change. Each fetch takes a generation; a fetch resolving
// after a newer one was issued is discarded, so the held data always
// reflects the most recently issued query, not the most recently
// resolved one.
type resource[T any] struct {
	mu     sync.Mutex
	state  State
	data   T
	errMsg string
	gen    uint64
}

func (r *resource[T]) begin() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.state = Loading
	r.errMsg = ""
	return r.gen
}

func (r *resource[T]) complete(gen uint64, data T) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.state = Ready
	r.data = data
	r.errMsg = ""
	return true
}

func (r *resource[T]) fail(gen uint64, msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	r.state = Failed
	r.errMsg = msg
	return true
}

func (r *resource[T]) snapshot() (State, T, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.data, r.errMsg
}
