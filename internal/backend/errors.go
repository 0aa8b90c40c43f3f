package backend

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies every failure surfaced by this application. Stores
// re-throw write errors to callers; query resources hold them as state.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation marks a client-side precondition failure that
	// never reached the network.
	KindValidation
	KindAuth
	KindNotFound
	KindConflict
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.cause }

// Validationf builds a local precondition failure.
func Validationf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func networkErr(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: "backend unreachable", cause: cause}
}

func statusErr(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	kind := KindUnknown
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = KindAuth
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status == http.StatusConflict:
		kind = KindConflict
	case status == http.StatusBadRequest:
		kind = KindValidation
	}
	return &Error{Kind: kind, Status: status, Message: message}
}

// KindOf reports the taxonomy kind of err, unwrapping as needed, or
// KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Wrap annotates err with context while preserving its kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, message)
}

func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }
