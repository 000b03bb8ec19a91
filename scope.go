// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// Never is the error type finalizers are specified over: a finalizer
// never produces a typed, recoverable failure — only success, a defect, or
// cancellation. No value of type Never is ever constructed; it exists only
// to instantiate Failure/Result/Eff's E type parameter.
type Never struct{}

// Finalizer runs on scope exit, given the scope's final outcome
// type-erased to an (any, any) Result.
type Finalizer func(Result[any, any]) Eff[struct{}, Never]

// scopeTag is the service-map key under which [Scoped] installs the
// ambient [Scope] for the duration of its body.
var scopeTag = NewTag[*Scope]("effect.Scope")

// Scope is a lifetime bracket carrying an ordered set of finalizers. It is
// Open until [Scope.Close] transitions it to Closed exactly once;
// subsequent Close calls are no-ops.
type Scope struct {
	mu         sync.Mutex
	closed     bool
	result     Result[any, any]
	finalizers []Finalizer
	children   []*Scope
	parent     *Scope
}

// NewScope creates a fresh, Open scope with no finalizers.
func NewScope() *Scope {
	return &Scope{}
}

// AddFinalizer registers fin to run when the scope closes. If the scope is
// already Closed, fin runs immediately against the recorded final result.
func (s *Scope) AddFinalizer(fin Finalizer) Eff[struct{}, Never] {
	return make(func(env *Env, onResult func(Result[struct{}, Never])) {
		s.mu.Lock()
		if s.closed {
			res := s.result
			s.mu.Unlock()
			fin(res)(env, func(Result[struct{}, Never]) {
				onResult(Ok[Never](struct{}{}))
			})
			return
		}
		s.finalizers = append(s.finalizers, fin)
		s.mu.Unlock()
		onResult(Ok[Never](struct{}{}))
	})
}

// Close atomically transitions the scope to Closed — a no-op if it already
// is — then runs every registered finalizer in reverse insertion order,
// sequentially. Close succeeds iff every finalizer succeeded; otherwise it
// delivers the first finalizer failure encountered in that reverse order.
func (s *Scope) Close(result Result[any, any]) Eff[struct{}, Never] {
	return make(func(env *Env, onResult func(Result[struct{}, Never])) {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			onResult(Ok[Never](struct{}{}))
			return
		}
		s.closed = true
		s.result = result
		pending := s.finalizers
		s.finalizers = nil
		s.mu.Unlock()

		reversed := make([]Finalizer, len(pending))
		for i, fin := range pending {
			reversed[len(pending)-1-i] = fin
		}

		var firstFailure Failure[Never]
		sawFailure := false
		var run func(i int)
		run = func(i int) {
			if i >= len(reversed) {
				if sawFailure {
					onResult(Err[struct{}](firstFailure))
					return
				}
				onResult(Ok[Never](struct{}{}))
				return
			}
			AsResult(reversed[i](result))(env, func(r Result[Result[struct{}, Never], Never]) {
				inner, _ := r.Value()
				if f, ok := inner.Failure(); ok && !sawFailure {
					firstFailure = f
					sawFailure = true
				}
				run(i + 1)
			})
		}
		run(0)
	})
}

// Fork creates a child scope of s. If s is already Closed, the child
// starts Closed with s's final result. Otherwise the child records s as
// its parent and s records the child in its list of children. No
// finalizers are registered either way: closing s does not close the
// child, and closing the child does not remove it from s's list; each
// scope runs only its own finalizers when its own Close is called.
func (s *Scope) Fork() *Scope {
	s.mu.Lock()
	if s.closed {
		res := s.result
		s.mu.Unlock()
		return &Scope{closed: true, result: res}
	}
	child := &Scope{parent: s}
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child
}

// anyResult type-erases a Result[A, E] to Result[any, any], the shape
// [Finalizer] and [Scope.Close] operate on.
func anyResult[A, E any](r Result[A, E]) Result[any, any] {
	if v, ok := r.Value(); ok {
		return Ok[any](any(v))
	}
	f, _ := r.Failure()
	switch {
	case f.IsAborted():
		return Err[any](AbortedFailure[any]())
	case f.IsUnexpected():
		d, _ := f.Unexpected()
		return Err[any](UnexpectedFailure[any](d))
	default:
		e, _ := f.Expected()
		return Err[any](ExpectedFailure[any](any(e)))
	}
}

// Scoped runs self with a fresh [Scope] installed as a service, closing
// the scope with self's own final result — success or failure — before
// delivering. If closing the scope surfaces a finalizer failure, that
// failure takes precedence over self's own outcome.
func Scoped[A, E any](self Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		scope := NewScope()
		inner := env.WithServices(AddService(env.Services(), scopeTag, scope))
		self(inner, func(r Result[A, E]) {
			scope.Close(anyResult(r))(env, func(closeResult Result[struct{}, Never]) {
				if f, ok := closeResult.Failure(); ok {
					switch {
					case f.IsAborted():
						onResult(Err[A](AbortedFailure[E]()))
					default:
						d, _ := f.Unexpected()
						onResult(Err[A](UnexpectedFailure[E](d)))
					}
					return
				}
				onResult(r)
			})
		})
	})
}

// ambientScope reads the [Scope] installed by the nearest enclosing
// [Scoped], dying with a defect if called outside one.
func ambientScope[E any](env *Env) (*Scope, Failure[E], bool) {
	s, ok := GetService(env.Services(), scopeTag)
	if !ok {
		return nil, UnexpectedFailure[E]("effect: no ambient scope; wrap with Scoped"), false
	}
	return s, Failure[E]{}, true
}

// AcquireRelease runs acquire uninterruptibly and, on success, registers a
// finalizer on the ambient scope (installed by an enclosing [Scoped]) that
// calls release(a, result) on scope close.
func AcquireRelease[A, E any](acquire Eff[A, E], release func(A, Result[any, any]) Eff[struct{}, Never]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		scope, failure, ok := ambientScope[E](env)
		if !ok {
			onResult(Err[A](failure))
			return
		}
		Uninterruptible(acquire)(env, func(r Result[A, E]) {
			v, okVal := r.Value()
			if !okVal {
				onResult(r)
				return
			}
			scope.AddFinalizer(func(result Result[any, any]) Eff[struct{}, Never] {
				return release(v, result)
			})(env, func(Result[struct{}, Never]) {
				onResult(r)
			})
		})
	})
}

// AcquireUseRelease acquires a with acquire, runs use(a) in an
// interruptible sub-region, and always runs release(a, outcome) exactly
// once — for success, Expected failure, defect, or cancellation of use —
// before delivering use's outcome. acquire itself is atomic with respect
// to cancellation.
func AcquireUseRelease[A, R, E any](acquire Eff[A, E], use func(A) Eff[R, E], release func(A, Result[R, E]) Eff[struct{}, Never]) Eff[R, E] {
	return UninterruptibleMask(func(restore func(Eff[R, E]) Eff[R, E]) Eff[R, E] {
		return FlatMap(acquire, func(a A) Eff[R, E] {
			return FlatMap(AsResult(restore(use(a))), func(r Result[R, E]) Eff[R, E] {
				return func(env *Env, onResult func(Result[R, E])) {
					release(a, r)(env, func(released Result[struct{}, Never]) {
						f, failed := released.Failure()
						switch {
						case !failed:
							onResult(r)
						case f.IsAborted():
							onResult(Err[R](AbortedFailure[E]()))
						default:
							d, _ := f.Unexpected()
							onResult(Err[R](UnexpectedFailure[E](d)))
						}
					})
				}
			})
		})
	})
}

// OnResult runs f against self's final result on every exit — success,
// Expected, Unexpected, or Aborted — without altering self's own outcome,
// unless f itself fails, in which case f's failure is delivered in place of
// self's outcome; the two failures are not combined.
func OnResult[A, E any](self Eff[A, E], f func(Result[A, E]) Eff[struct{}, Never]) Eff[A, E] {
	return AcquireUseRelease(Succeed[E](struct{}{}), func(struct{}) Eff[A, E] { return self }, func(_ struct{}, r Result[A, E]) Eff[struct{}, Never] {
		return f(r)
	})
}

// OnInterrupt runs f only when self's final result is Aborted.
func OnInterrupt[A, E any](self Eff[A, E], f func() Eff[struct{}, Never]) Eff[A, E] {
	return OnResult(self, func(r Result[A, E]) Eff[struct{}, Never] {
		if failure, ok := r.Failure(); ok && failure.IsAborted() {
			return f()
		}
		return Succeed[Never](struct{}{})
	})
}
