package fips

import (
	"errors"
	"fmt"
)

// Kind is the category of a bridge error.
type Kind int

// Error categories surfaced to callers
const (
	KindUnknown Kind = iota
	KindAllocation
	KindConversion
	KindContextNotFound
	KindSignatureMismatch
	KindOperation
)

// Sentinel errors, one per Kind. Match with errors.Is.
var (
	ErrAllocation        = errors.New("allocation error")
	ErrConversion        = errors.New("conversion error")
	ErrContextNotFound   = errors.New("context not found")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrOperation         = errors.New("operation error")
)

// ErrUnknownAlgorithm is returned by a Module when an identifier does not name an algorithm or curve it provides.
var ErrUnknownAlgorithm = errors.New("unknown algorithm identifier")

// ErrRecordNotFound is returned by a VerificationRepository for an unknown record id.
var ErrRecordNotFound = errors.New("verification record not found")

// ErrNoReferenceFingerprint is returned by an integrity check when no reference fingerprint is embedded.
var ErrNoReferenceFingerprint = errors.New("no reference fingerprint embedded in module")

// ErrFingerprintMismatch is returned by an integrity check when the module image does not match its
// reference fingerprint. Callers must treat it as fatal.
var ErrFingerprintMismatch = errors.New("fingerprint mismatch")

// ErrModeUnavailable is returned by a Module that cannot change its operating mode.
var ErrModeUnavailable = errors.New("operating mode cannot be changed")

func (k Kind) String() string {
	switch k {
	case KindAllocation:
		return "AllocationError"
	case KindConversion:
		return "ConversionError"
	case KindContextNotFound:
		return "ContextNotFoundError"
	case KindSignatureMismatch:
		return "SignatureMismatch"
	case KindOperation:
		return "OperationError"
	default:
		return "UnknownError"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAllocation:
		return ErrAllocation
	case KindConversion:
		return ErrConversion
	case KindContextNotFound:
		return ErrContextNotFound
	case KindSignatureMismatch:
		return ErrSignatureMismatch
	case KindOperation:
		return ErrOperation
	default:
		return nil
	}
}

// Error is the error value every bridge operation returns.
// Detail carries the module's diagnostic string when one is available.
type Error struct {
	Op     string
	Kind   Kind
	Msg    string
	Detail string
	Err    error
}

// NewError builds an Error of the given kind. A non-nil cause becomes both the wrapped error and the Detail.
func NewError(kind Kind, op, msg string, cause error) *Error {
	e := &Error{Op: op, Kind: kind, Msg: msg, Err: cause}
	if cause != nil {
		e.Detail = cause.Error()
	}
	return e
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Msg)
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return msg
}

// Unwrap returns the underlying module error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of this error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
