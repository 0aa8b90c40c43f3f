package flow

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/medshop/internal/backend"
)

type registerFixture struct {
	srv       *httptest.Server
	registers atomic.Int64
	verifies  atomic.Int64
	lastBody  atomic.Value
}

func newRegisterFixture(t *testing.T) (*registerFixture, *Registration) {
	t.Helper()
	f := &registerFixture{}

	mux := http.NewServeMux()
	mux.HandleFunc("/users/register", func(w http.ResponseWriter, r *http.Request) {
		f.registers.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.lastBody.Store(string(body))
		w.Write([]byte(`{"message":"OTP sent"}`))
	})
	mux.HandleFunc("/users/verify-otp", func(w http.ResponseWriter, r *http.Request) {
		f.verifies.Add(1)
		body, _ := io.ReadAll(r.Body)
		f.lastBody.Store(string(body))
		w.Write([]byte(`{"message":"verified"}`))
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)

	return f, NewRegistration(backend.New(f.srv.URL, 5*time.Second))
}

func TestRegistration_SubmitAdvancesToVerify(t *testing.T) {
	f, reg := newRegisterFixture(t)

	assert.Equal(t, StepRegister, reg.Step())
	require.NoError(t, reg.Submit(context.Background(), "Ana", "ana@example.com", "secret"))
	assert.Equal(t, StepVerify, reg.Step())
	assert.Equal(t, "ana@example.com", reg.Email())
	assert.Equal(t, int64(1), f.registers.Load())
}

func TestRegistration_ResendRepeatsIdenticalPayload(t *testing.T) {
	f, reg := newRegisterFixture(t)
	require.NoError(t, reg.Submit(context.Background(), "Ana", "ana@example.com", "secret"))
	firstBody := f.lastBody.Load().(string)

	require.NoError(t, reg.Resend(context.Background()))
	assert.Equal(t, StepVerify, reg.Step())
	assert.Equal(t, int64(2), f.registers.Load())
	assert.Equal(t, firstBody, f.lastBody.Load().(string))
}

func TestRegistration_ResendBeforeSubmitRejected(t *testing.T) {
	f, reg := newRegisterFixture(t)

	err := reg.Resend(context.Background())
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Zero(t, f.registers.Load())
}

func TestRegistration_StartWithPrefillEntersVerify(t *testing.T) {
	f, reg := newRegisterFixture(t)

	reg.Start("ana@example.com")
	assert.Equal(t, StepVerify, reg.Step())
	assert.Equal(t, "ana@example.com", reg.Email())

	require.NoError(t, reg.Verify(context.Background(), "123456"))
	assert.Equal(t, int64(1), f.verifies.Load())
	assert.Contains(t, f.lastBody.Load().(string), "ana@example.com")
}

func TestRegistration_VerifyWithoutEmailRejected(t *testing.T) {
	f, reg := newRegisterFixture(t)

	err := reg.Verify(context.Background(), "123456")
	require.Error(t, err)
	assert.True(t, backend.IsValidation(err))
	assert.Zero(t, f.verifies.Load())
}

func TestRegistration_BackClearsCarriedState(t *testing.T) {
	_, reg := newRegisterFixture(t)
	require.NoError(t, reg.Submit(context.Background(), "Ana", "ana@example.com", "secret"))

	reg.Back()
	assert.Equal(t, StepRegister, reg.Step())
	assert.Empty(t, reg.Email())

	err := reg.Resend(context.Background())
	require.Error(t, err)
}
