package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResource_LatestIssuedWins(t *testing.T) {
	var r resource[string]

	first := r.begin()
	second := r.begin()

	// the older fetch resolves after the newer one was issued
	assert.True(t, r.complete(second, "page-2"))
	assert.False(t, r.complete(first, "page-1"))

	state, data, errMsg := r.snapshot()
	assert.Equal(t, Ready, state)
	assert.Equal(t, "page-2", data)
	assert.Empty(t, errMsg)
}

func TestResource_StaleFailureDiscarded(t *testing.T) {
	var r resource[string]

	first := r.begin()
	second := r.begin()

	assert.True(t, r.complete(second, "fresh"))
	assert.False(t, r.fail(first, "timeout"))

	state, data, errMsg := r.snapshot()
	assert.Equal(t, Ready, state)
	assert.Equal(t, "fresh", data)
	assert.Empty(t, errMsg)
}

func TestResource_FailureThenRetry(t *testing.T) {
	var r resource[string]

	gen := r.begin()
	assert.True(t, r.fail(gen, "backend unreachable"))
	state, _, errMsg := r.snapshot()
	assert.Equal(t, Failed, state)
	assert.Equal(t, "backend unreachable", errMsg)

	gen = r.begin()
	state, _, errMsg = r.snapshot()
	assert.Equal(t, Loading, state)
	assert.Empty(t, errMsg)

	assert.True(t, r.complete(gen, "ok"))
	state, data, _ := r.snapshot()
	assert.Equal(t, Ready, state)
	assert.Equal(t, "ok", data)
}
