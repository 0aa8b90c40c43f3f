package flow

import (
	"context"
	"sync"

	"github.com/talkincode/medshop/internal/backend"
)

// Step is the registration flow position: the register form or the OTP
// verification form.
type Step int

const (
	StepRegister Step = iota
	StepVerify
)

func (s Step) String() string {
	if s == StepVerify {
		return "verify"
	}
	return "register"
}

// Registration drives register -> verify. An external referral that
// already supplies an email (a login attempt against an unverified
// account) enters directly at verify. Resend re-submits the identical
// registration payload; there is no dedicated resend endpoint.
type Registration struct {
	mu  sync.Mutex
	api *backend.Client

	step     Step
	name     string
	email    string
	password string
}

func NewRegistration(api *backend.Client) *Registration {
	return &Registration{api: api, step: StepRegister}
}

// Start positions the flow. A non-empty prefill email jumps straight to
// the verify step.
func (f *Registration) Start(prefillEmail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if prefillEmail != "" {
		f.email = prefillEmail
		f.step = StepVerify
		return
	}
	f.step = StepRegister
}

// Submit requests account creation. Success means an OTP was dispatched
// server-side; no session is established. The inputs are retained for
// resend.
func (f *Registration) Submit(ctx context.Context, name, email, password string) error {
	if err := f.api.Register(ctx, name, email, password); err != nil {
		return err
	}
	f.mu.Lock()
	f.name, f.email, f.password = name, email, password
	f.step = StepVerify
	f.mu.Unlock()
	return nil
}

// Resend re-submits the prior registration payload to trigger a fresh
// OTP. The flow stays at the verify step whether it succeeds or not.
func (f *Registration) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.step != StepVerify {
		f.mu.Unlock()
		return backend.Validationf("nothing to resend")
	}
	name, email, password := f.name, f.email, f.password
	f.mu.Unlock()
	return f.api.Register(ctx, name, email, password)
}

// Verify finalizes account verification. It does not establish a
// session; the caller routes the user to login afterward.
func (f *Registration) Verify(ctx context.Context, otp string) error {
	f.mu.Lock()
	email := f.email
	f.mu.Unlock()
	if email == "" {
		return backend.Validationf("no registration in progress")
	}
	return f.api.VerifyOtp(ctx, email, otp)
}

// Back returns to the register form, clearing any carried-over state.
func (f *Registration) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepRegister
	f.name, f.email, f.password = "", "", ""
}

func (f *Registration) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Registration) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}
