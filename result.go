// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"fmt"

	"github.com/pkg/errors"
)

// failureKind tags which of the three failure variants a [Failure] holds.
type failureKind uint8

const (
	failureExpected failureKind = iota
	failureUnexpected
	failureAborted
)

// Failure is the tagged outcome of a computation that did not succeed.
// It is exactly one of:
//
//   - Expected[E]: a typed, recoverable error the caller planned for
//   - Unexpected(defect): a panic or other unplanned error
//   - Aborted: cancellation, carrying no payload
//
// Aborted is a singleton in spirit: every [Failure] constructed via
// [AbortedFailure] compares equal on its kind regardless of E.
type Failure[E any] struct {
	kind       failureKind
	err        E
	defect     error
}

// ExpectedFailure wraps a typed, recoverable error.
func ExpectedFailure[E any](err E) Failure[E] {
	return Failure[E]{kind: failureExpected, err: err}
}

// UnexpectedFailure wraps an unplanned defect. If defect is not already an
// error, it is captured with a stack trace via [errors.Errorf] so the
// failure can be inspected at the boundary.
func UnexpectedFailure[E any](defect any) Failure[E] {
	if err, ok := defect.(error); ok {
		return Failure[E]{kind: failureUnexpected, defect: errors.WithStack(err)}
	}
	return Failure[E]{kind: failureUnexpected, defect: errors.Errorf("effect: defect: %v", defect)}
}

// AbortedFailure reports cancellation.
func AbortedFailure[E any]() Failure[E] {
	return Failure[E]{kind: failureAborted}
}

// IsExpected reports whether this is an [ExpectedFailure].
func (f Failure[E]) IsExpected() bool { return f.kind == failureExpected }

// IsUnexpected reports whether this is an [UnexpectedFailure].
func (f Failure[E]) IsUnexpected() bool { return f.kind == failureUnexpected }

// IsAborted reports whether this is an [AbortedFailure].
func (f Failure[E]) IsAborted() bool { return f.kind == failureAborted }

// Expected returns the typed error and true if this is an expected failure.
func (f Failure[E]) Expected() (E, bool) {
	if f.kind != failureExpected {
		var zero E
		return zero, false
	}
	return f.err, true
}

// Unexpected returns the captured defect and true if this is an unexpected failure.
func (f Failure[E]) Unexpected() (error, bool) {
	if f.kind != failureUnexpected {
		return nil, false
	}
	return f.defect, true
}

// Error renders the failure for diagnostics and satisfies the error interface,
// so a [Failure] can be surfaced directly at a runPromise/runSync boundary.
func (f Failure[E]) Error() string {
	switch f.kind {
	case failureExpected:
		return fmt.Sprintf("effect: expected failure: %v", f.err)
	case failureUnexpected:
		return fmt.Sprintf("effect: unexpected defect: %v", f.defect)
	default:
		return "effect: aborted"
	}
}

// Result is the outcome of running an [Eff]: either Ok(A) or Err(Failure[E]).
type Result[A, E any] struct {
	ok    bool
	value A
	fail  Failure[E]
}

// Ok constructs a successful result.
func Ok[E, A any](a A) Result[A, E] {
	return Result[A, E]{ok: true, value: a}
}

// Err constructs a failed result from a [Failure].
func Err[A, E any](f Failure[E]) Result[A, E] {
	return Result[A, E]{ok: false, fail: f}
}

// IsOk reports whether the result is a success.
func (r Result[A, E]) IsOk() bool { return r.ok }

// Value returns the success value and true, or the zero value and false.
func (r Result[A, E]) Value() (A, bool) {
	if !r.ok {
		var zero A
		return zero, false
	}
	return r.value, true
}

// Failure returns the failure and true, or the zero [Failure] and false.
func (r Result[A, E]) Failure() (Failure[E], bool) {
	if r.ok {
		var zero Failure[E]
		return zero, false
	}
	return r.fail, true
}

// ExpectedError wraps an [ExpectedFailure]'s typed error as a Go error at a
// runPromise/runSync boundary, so the original E survives the crossing
// recoverably: when E is an error or interface type, [errors.As] with a *E
// target recovers it, and [errors.Unwrap] follows through to it when E
// itself implements error. For any other E, errors.As cannot take a *E
// target, and the value is reachable only as the Err field of the
// ExpectedError[E].
type ExpectedError[E any] struct{ Err E }

// Error renders the wrapped value for diagnostics.
func (e ExpectedError[E]) Error() string {
	return fmt.Sprintf("effect: %v", e.Err)
}

// Unwrap returns the wrapped error when E implements error, so
// [errors.Is]/[errors.As] can see through to it, and nil otherwise.
func (e ExpectedError[E]) Unwrap() error {
	if err, ok := any(e.Err).(error); ok {
		return err
	}
	return nil
}

// As implements the target of [errors.As]: given a *E, it reports the
// wrapped value and true. This lets callers recover the original typed
// error with errors.As(err, &typedErr) without knowing about
// [ExpectedError] itself.
func (e ExpectedError[E]) As(target any) bool {
	p, ok := target.(*E)
	if !ok {
		return false
	}
	*p = e.Err
	return true
}

// AsEither projects a [Result] to a (value, error) pair at a host boundary,
// the shape [RunPromise] and [RunSync] return. Expected failures surface
// their typed error recoverably via [ExpectedError]; Unexpected failures surface the captured defect (with
// its stack trace, via [errors.Cause]-compatible wrapping); Aborted
// surfaces [ErrAborted].
func AsEither[A, E any](r Result[A, E]) (A, error) {
	if v, ok := r.Value(); ok {
		return v, nil
	}
	f, _ := r.Failure()
	switch {
	case f.IsAborted():
		var zero A
		return zero, ErrAborted
	case f.IsUnexpected():
		d, _ := f.Unexpected()
		var zero A
		return zero, d
	default:
		e, _ := f.Expected()
		var zero A
		return zero, ExpectedError[E]{Err: e}
	}
}

// ErrAborted is the sentinel error surfaced at a runPromise/runSync boundary
// when a computation completes with [Failure.IsAborted].
var ErrAborted = errors.New("effect: aborted")
