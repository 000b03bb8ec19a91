// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// Handle observes a running, possibly-forked computation. Its result is
// single-assignment: once set, every waiting and future observer sees the
// same value, and each observer is notified exactly once.
//
// Forked effects run on their own goroutine rather than the single-
// threaded microtask queue the original design assumes — the idiomatic Go
// substitute for "schedule on the next turn of the loop".
type Handle[A, E any] struct {
	mu                   sync.Mutex
	result               *Result[A, E]
	observers            map[int]func(Result[A, E])
	nextObsID            int
	controller           *AbortController
	isRoot               bool
	removeParentListener func()
}

func newHandle[A, E any](controller *AbortController, isRoot bool) *Handle[A, E] {
	return &Handle[A, E]{controller: controller, isRoot: isRoot}
}

// linkParent registers the handle's controller to abort when parent fires,
// and arranges for that listener to be removed once the handle settles —
// if non-root, the handle removes its abort listener from the parent
// signal rather than leaking it for the parent's remaining lifetime.
func (h *Handle[A, E]) linkParent(parent *AbortSignal) {
	h.removeParentListener = parent.OnAbort(h.controller.Abort)
}

// IsRoot reports whether this handle was created without a parent signal
// to honor — true for [ForkDaemon] and [RunFork].
func (h *Handle[A, E]) IsRoot() bool { return h.isRoot }

func (h *Handle[A, E]) complete(r Result[A, E]) {
	h.mu.Lock()
	if h.result != nil {
		h.mu.Unlock()
		return
	}
	h.result = &r
	observers := h.observers
	h.observers = nil
	remove := h.removeParentListener
	h.removeParentListener = nil
	h.mu.Unlock()
	h.controller.Abort()
	if remove != nil {
		remove()
	}
	for _, obs := range observers {
		obs(r)
	}
}

// Await has no typed failure: it delivers the handle's eventual [Result],
// whichever polarity it settles with. Like any other effect, Await itself
// completes with Aborted if the computation running it is cancelled before
// the handle settles.
func (h *Handle[A, E]) Await() Eff[Result[A, E], Never] {
	return Async[Never, Result[A, E]](func(resume func(Eff[Result[A, E], Never]), _ *AbortSignal) func() {
		h.mu.Lock()
		if h.result != nil {
			r := *h.result
			h.mu.Unlock()
			resume(Succeed[Never](r))
			return nil
		}
		id := h.nextObsID
		h.nextObsID++
		if h.observers == nil {
			h.observers = make(map[int]func(Result[A, E]))
		}
		h.observers[id] = func(r Result[A, E]) { resume(Succeed[Never](r)) }
		h.mu.Unlock()
		return func() {
			h.mu.Lock()
			delete(h.observers, id)
			h.mu.Unlock()
		}
	})
}

// Join unwraps the handle's eventual Result back into effect form: a
// forked Expected failure or defect propagates as this effect's own.
func (h *Handle[A, E]) Join() Eff[A, E] {
	return func(env *Env, onResult func(Result[A, E])) {
		h.Await()(env, func(r Result[Result[A, E], Never]) {
			if inner, ok := r.Value(); ok {
				onResult(inner)
				return
			}
			f, _ := r.Failure()
			if d, ok := f.Unexpected(); ok {
				onResult(Err[A](UnexpectedFailure[E](d)))
				return
			}
			onResult(Err[A](AbortedFailure[E]()))
		})
	}
}

// UnsafeAbort synchronously fires the handle's own controller. Idempotent:
// aborting an already-completed handle is a no-op.
func (h *Handle[A, E]) UnsafeAbort() {
	h.controller.Abort()
}

// Abort fires the handle's controller and waits for it to finish settling.
func (h *Handle[A, E]) Abort() Eff[struct{}, Never] {
	return make(func(env *Env, onResult func(Result[struct{}, Never])) {
		h.UnsafeAbort()
		h.Await()(env, func(Result[Result[A, E], Never]) {
			onResult(Ok[Never](struct{}{}))
		})
	})
}

// UnsafePoll returns the handle's result and true if it has settled, or
// the zero Result and false otherwise.
func (h *Handle[A, E]) UnsafePoll() (Result[A, E], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.result == nil {
		var zero Result[A, E]
		return zero, false
	}
	return *h.result, true
}

// Fork schedules self to run concurrently with a child abort controller
// linked to the current signal — parent cancellation cancels the child —
// and returns a [Handle] immediately. The parent's own lifetime does not
// wait on the child: handles are independent until explicitly joined or
// awaited.
func Fork[A, E any](self Eff[A, E]) Eff[*Handle[A, E], Never] {
	return make(func(env *Env, onResult func(Result[*Handle[A, E], Never])) {
		childController := NewAbortController()
		h := newHandle[A, E](childController, false)
		h.linkParent(env.Signal())
		childEnv := env.WithController(childController)
		go self(childEnv, h.complete)
		onResult(Ok[Never](h))
	})
}

// ForkDaemon is like [Fork], but with a root controller unlinked from any
// parent signal: the resulting handle's IsRoot is true, and only an
// explicit Abort or UnsafeAbort stops it.
func ForkDaemon[A, E any](self Eff[A, E]) Eff[*Handle[A, E], Never] {
	return make(func(env *Env, onResult func(Result[*Handle[A, E], Never])) {
		childController := NewAbortController()
		h := newHandle[A, E](childController, true)
		childEnv := env.WithController(childController).WithInterruptible(true)
		go self(childEnv, h.complete)
		onResult(Ok[Never](h))
	})
}

// RunFork forks self against a fresh root [Env] from outside any running
// effect, returning its [Handle] immediately. This is the usual top-level
// entry point for fire-and-forget or supervised background work.
func RunFork[A, E any](self Eff[A, E]) *Handle[A, E] {
	env := NewEnv()
	childController := NewAbortController()
	h := newHandle[A, E](childController, true)
	childEnv := env.WithController(childController)
	go self(childEnv, h.complete)
	return h
}
