// Package apperr defines the error taxonomy shared by the storage, service and HTTP layers.
package apperr

import "errors"

// Kind is the category an error belongs to. Callers branch on the kind,
// never on the message.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidState
	KindInvalidInput
	KindDataIntegrity
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindInvalidInput:
		return "invalid_input"
	case KindDataIntegrity:
		return "data_integrity"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is a categorized, code-carrying error. Two *Error values match under
// errors.Is when their codes are equal, so a wrapped copy still matches the
// sentinel it was derived from.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// New returns a sentinel error of the given kind.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

// With returns a copy of e whose message is extended with detail.
func (e *Error) With(detail string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message + ": " + detail, Err: e.Err}
}

// Generic storage-level failures.
var (
	ErrDataIntegrity = New(KindDataIntegrity, "DATA_INTEGRITY", "stored data is inconsistent")
	ErrConflict      = New(KindConflict, "STORAGE_CONFLICT", "concurrent update, retry the operation")
)

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf reports the code of the first *Error in err's chain, or "INTERNAL_ERROR".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL_ERROR"
}

// IsRetryable reports whether the failure is transient storage contention.
func IsRetryable(err error) bool {
	return KindOf(err) == KindConflict
}
