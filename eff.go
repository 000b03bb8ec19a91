// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"github.com/pkg/errors"
)

// Eff is a suspended computation. Eff[A, E] computes a value of type A,
// possibly failing with a typed error E, possibly being cancelled.
//
// Run must, exactly once per invocation, deliver a [Result] to onResult —
// unless the computation is [Never] or built from it, which may not
// deliver at all. Delivery is not required to be synchronous: onResult may
// be invoked from another goroutine, after a timer fires, or after a
// forked child completes.
type Eff[A, E any] func(env *Env, onResult func(Result[A, E]))

// make wraps body with the universal preflight checkpoint every constructed
// effect must honor: if cancellation is both pending and currently
// observable, deliver Aborted without invoking body.
func make[A, E any](body func(env *Env, onResult func(Result[A, E]))) Eff[A, E] {
	return func(env *Env, onResult func(Result[A, E])) {
		if env.checkpoint() {
			onResult(Err[A, E](AbortedFailure[E]()))
			return
		}
		body(env, onResult)
	}
}

// Succeed lifts a pure value into a computation that always delivers Ok(a).
func Succeed[E, A any](a A) Eff[A, E] {
	return make(func(_ *Env, onResult func(Result[A, E])) {
		onResult(Ok[E](a))
	})
}

// Fail lifts a typed, recoverable error into a computation that always
// delivers Err(Expected(err)).
func Fail[A, E any](err E) Eff[A, E] {
	return make(func(_ *Env, onResult func(Result[A, E])) {
		onResult(Err[A](ExpectedFailure(err)))
	})
}

// Die lifts an unplanned defect into a computation that always delivers
// Err(Unexpected(defect)).
func Die[A, E any](defect any) Eff[A, E] {
	return make(func(_ *Env, onResult func(Result[A, E])) {
		onResult(Err[A](UnexpectedFailure[E](defect)))
	})
}

// Sync wraps a thunk that may panic. A panic is recovered and delivered as
// an Unexpected failure rather than propagating up the call stack.
func Sync[E, A any](thunk func() A) Eff[A, E] {
	return make(func(_ *Env, onResult func(Result[A, E])) {
		var (
			value   A
			failure Failure[E]
			failed  bool
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					failure = UnexpectedFailure[E](r)
					failed = true
				}
			}()
			value = thunk()
		}()
		if failed {
			onResult(Err[A](failure))
			return
		}
		onResult(Ok[E](value))
	})
}

// Suspend defers constructing the computation until run, catching a panic
// from f itself as an Unexpected failure (the returned Eff's own panics,
// if any, are handled the usual way once it runs).
func Suspend[A, E any](f func() Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		var (
			next    Eff[A, E]
			failure Failure[E]
			failed  bool
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					failure = UnexpectedFailure[E](r)
					failed = true
				}
			}()
			next = f()
		}()
		if failed {
			onResult(Err[A](failure))
			return
		}
		next(env, onResult)
	})
}

// FromOption lifts an [Option]. Some(a) becomes Ok(a); None becomes
// Err(Expected(none)).
func FromOption[A any, None any](o Option[A], none None) Eff[A, None] {
	return make(func(_ *Env, onResult func(Result[A, None])) {
		if v, ok := o.Get(); ok {
			onResult(Ok[None](v))
			return
		}
		onResult(Err[A](ExpectedFailure(none)))
	})
}

// FromEither lifts an [Either]. Right(a) becomes Ok(a); Left(e) becomes
// Err(Expected(e)).
func FromEither[L, R any](e Either[L, R]) Eff[R, L] {
	return make(func(_ *Env, onResult func(Result[R, L])) {
		if v, ok := e.Right(); ok {
			onResult(Ok[L](v))
			return
		}
		l, _ := e.Left()
		onResult(Err[R](ExpectedFailure(l)))
	})
}

// Service reads the value bound to tag in the ambient service map. An
// absent or mis-typed binding is a programmer error, surfaced as an
// Unexpected defect rather than a typed failure.
func Service[E any, T any](tag Tag[T]) Eff[T, E] {
	return make(func(env *Env, onResult func(Result[T, E])) {
		v, ok := GetService(env.Services(), tag)
		if !ok {
			onResult(Err[T](UnexpectedFailure[E](errors.Errorf("effect: service not bound: %s", tag))))
			return
		}
		onResult(Ok[E](v))
	})
}

// Async registers a callback-driven computation. register receives a
// resume function and the ambient abort signal; it may call resume at most
// once, synchronously or from another goroutine, to settle the
// computation with an Eff (commonly [Succeed] or [Fail]). If register
// returns a non-nil cleanup, cleanup runs uninterruptibly if the ambient
// signal fires before resume is called, after which the computation
// settles with Aborted.
func Async[E, A any](register func(resume func(Eff[A, E]), signal *AbortSignal) func()) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		settle := Once(func(action func()) struct{} {
			action()
			return struct{}{}
		})
		resume := func(eff Eff[A, E]) {
			settle.TryResume(func() { eff(env, onResult) })
		}
		cleanup := register(resume, env.Signal())
		env.Signal().OnAbort(func() {
			settle.TryResume(func() {
				if cleanup == nil {
					onResult(Err[A, E](AbortedFailure[E]()))
					return
				}
				uninterruptibleEnv := env.WithController(NewAbortController()).WithInterruptible(false)
				Sync[E](func() struct{} {
					cleanup()
					return struct{}{}
				})(uninterruptibleEnv, func(Result[struct{}, E]) {
					onResult(Err[A, E](AbortedFailure[E]()))
				})
			})
		})
	})
}

// YieldNow suspends to the scheduler and resumes with Ok(struct{}{}),
// the Go analogue of enqueuing a microtask.
func YieldNow[E any]() Eff[struct{}, E] {
	return make(func(env *Env, onResult func(Result[struct{}, E])) {
		go onResult(Ok[E](struct{}{}))
	})
}

// Never never delivers a result unless the ambient signal fires, in which
// case it completes with Aborted. It holds its goroutine (if any
// downstream caller is blocked in [Run]) alive until cancelled.
func Never[A, E any]() Eff[A, E] {
	return Async[E, A](func(func(Eff[A, E]), *AbortSignal) func() {
		return nil
	})
}

// Run executes eff against a fresh root [Env], blocking the calling
// goroutine until it delivers a [Result].
func Run[E, A any](eff Eff[A, E]) Result[A, E] {
	return RunEnv(NewEnv(), eff)
}

// RunEnv executes eff against env, blocking the calling goroutine until it
// delivers a [Result].
func RunEnv[E, A any](env *Env, eff Eff[A, E]) Result[A, E] {
	ch := make(chan Result[A, E], 1)
	eff(env, func(r Result[A, E]) { ch <- r })
	return <-ch
}
