// Package errs defines the error kinds persist's containers can raise.
//
// Every error returned by the containers' own operations wraps one of the
// sentinels below, so callers can test for a kind with errors.Is rather
// than string matching. The UnmarshalJSON methods return encoding/json's
// errors as they are.
// Errors are never retried or logged internally; they propagate unchanged.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned by list access/mutation outside the
	// valid index range for the operation.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrKeyMissing is returned by remove/delete/pop on an absent
	// key or element when no default is supplied.
	ErrKeyMissing = errors.New("key missing")

	// ErrTypeMismatch is returned when an operand has the wrong type for
	// an arithmetic, comparison, or iteration operation.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrArityError is returned when a variadic constructor or pop
	// receives more arguments than documented.
	ErrArityError = errors.New("arity error")

	// ErrMutatedDuringIteration is returned by a transient iterator that
	// observes a structural mutation mid-walk.
	ErrMutatedDuringIteration = errors.New("mutated during iteration")

	// ErrEvaluationFailed wraps a lazy thunk's live error behind the
	// diagnostic captured at the cell's construction site.
	ErrEvaluationFailed = errors.New("lazy evaluation failed")

	// ErrCycleDetected is returned when a lazy cell observes its own
	// evaluation already in progress on the same goroutine.
	ErrCycleDetected = errors.New("cycle detected")
)

// IndexOutOfRange wraps ErrIndexOutOfRange with context.
func IndexOutOfRange(format string, args ...any) error {
	return wrap(ErrIndexOutOfRange, format, args...)
}

// KeyMissing wraps ErrKeyMissing with context.
func KeyMissing(format string, args ...any) error {
	return wrap(ErrKeyMissing, format, args...)
}

// TypeMismatch wraps ErrTypeMismatch with context.
func TypeMismatch(format string, args ...any) error {
	return wrap(ErrTypeMismatch, format, args...)
}

// Arity wraps ErrArityError with context.
func Arity(format string, args ...any) error {
	return wrap(ErrArityError, format, args...)
}

// MutatedDuringIteration wraps ErrMutatedDuringIteration with context.
func MutatedDuringIteration(format string, args ...any) error {
	return wrap(ErrMutatedDuringIteration, format, args...)
}

// EvaluationFailed wraps ErrEvaluationFailed with context. Callers that
// also want the live thunk error reachable via errors.Is/errors.As should
// chain it in separately with a second %w at the call site, rather than
// folding it into format/args here.
func EvaluationFailed(format string, args ...any) error {
	return wrap(ErrEvaluationFailed, format, args...)
}

// CycleDetected wraps ErrCycleDetected with context.
func CycleDetected(format string, args ...any) error {
	return wrap(ErrCycleDetected, format, args...)
}

func wrap(sentinel error, format string, args ...any) error {
	return &wrapped{sentinel: sentinel, msg: fmt.Sprintf(format, args...)}
}

type wrapped struct {
	sentinel error
	msg      string
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.msg }
func (w *wrapped) Unwrap() error { return w.sentinel }
