// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Map applies f to self's success value. A panic from f is caught as an
// Unexpected failure; any Err propagates unchanged.
func Map[A, E, B any](self Eff[A, E], f func(A) B) Eff[B, E] {
	return make(func(env *Env, onResult func(Result[B, E])) {
		self(env, func(r Result[A, E]) {
			v, ok := r.Value()
			if !ok {
				failure, _ := r.Failure()
				onResult(Err[B](failure))
				return
			}
			runCatching(func() B { return f(v) }, onResult)
		})
	})
}

// FlatMap runs f(a) in the same Env when self succeeds, propagating self's
// failure otherwise. This is the core monadic bind every other sequencing
// combinator in this file is expressible in terms of.
func FlatMap[A, E, B any](self Eff[A, E], f func(A) Eff[B, E]) Eff[B, E] {
	return make(func(env *Env, onResult func(Result[B, E])) {
		self(env, func(r Result[A, E]) {
			v, ok := r.Value()
			if !ok {
				failure, _ := r.Failure()
				onResult(Err[B](failure))
				return
			}
			var (
				next   Eff[B, E]
				failed bool
				fail   Failure[E]
			)
			func() {
				defer func() {
					if rec := recover(); rec != nil {
						fail = UnexpectedFailure[E](rec)
						failed = true
					}
				}()
				next = f(v)
			}()
			if failed {
				onResult(Err[B](fail))
				return
			}
			next(env, onResult)
		})
	})
}

// AndThen runs self, discards its success value, then runs next.
func AndThen[A, E, B any](self Eff[A, E], next Eff[B, E]) Eff[B, E] {
	return FlatMap(self, func(A) Eff[B, E] { return next })
}

// As runs self, discards its success value, and always succeeds with value.
func As[A, E, B any](self Eff[A, E], value B) Eff[B, E] {
	return AndThen(self, Succeed[E](value))
}

// Tap runs f(a) for its side effects when self succeeds, preserving self's
// own value on success — unless f itself fails, in which case f's failure
// replaces self's success.
func Tap[A, E any](self Eff[A, E], f func(A) Eff[struct{}, E]) Eff[A, E] {
	return FlatMap(self, func(a A) Eff[A, E] {
		return AndThen(f(a), Succeed[E](a))
	})
}

// AsResult reifies self's outcome: it always succeeds, delivering self's
// own Result as its value.
func AsResult[A, E any](self Eff[A, E]) Eff[Result[A, E], E] {
	return make(func(env *Env, onResult func(Result[Result[A, E], E])) {
		self(env, func(r Result[A, E]) {
			onResult(Ok[E](r))
		})
	})
}

// FromResult lifts an already-computed Result back into an effect.
func FromResult[A, E any](r Result[A, E]) Eff[A, E] {
	return make(func(_ *Env, onResult func(Result[A, E])) {
		onResult(r)
	})
}

// MatchFailure dispatches on self's complete Failure, including Unexpected
// and Aborted. A panic from either handler is caught as Unexpected.
func MatchFailure[A, E, B any](self Eff[A, E], onFailure func(Failure[E]) Eff[B, E], onSuccess func(A) Eff[B, E]) Eff[B, E] {
	return make(func(env *Env, onResult func(Result[B, E])) {
		self(env, func(r Result[A, E]) {
			if v, ok := r.Value(); ok {
				runCatchingEff(env, onResult, func() Eff[B, E] { return onSuccess(v) })
				return
			}
			f, _ := r.Failure()
			runCatchingEff(env, onResult, func() Eff[B, E] { return onFailure(f) })
		})
	})
}

// Match dispatches only on Expected failures; Unexpected and Aborted
// propagate through unchanged.
func Match[A, E, B any](self Eff[A, E], onFailure func(E) Eff[B, E], onSuccess func(A) Eff[B, E]) Eff[B, E] {
	return MatchFailure(self, func(f Failure[E]) Eff[B, E] {
		if e, ok := f.Expected(); ok {
			return onFailure(e)
		}
		return propagate[B](f)
	}, onSuccess)
}

// CatchAllFailure intercepts every failure kind, including Unexpected and
// Aborted.
func CatchAllFailure[A, E any](self Eff[A, E], f func(Failure[E]) Eff[A, E]) Eff[A, E] {
	return MatchFailure(self, f, func(a A) Eff[A, E] { return Succeed[E](a) })
}

// CatchAll intercepts only Expected failures; Unexpected and Aborted
// propagate through unchanged.
func CatchAll[A, E any](self Eff[A, E], f func(E) Eff[A, E]) Eff[A, E] {
	return Match(self, f, func(a A) Eff[A, E] { return Succeed[E](a) })
}

// OrDie turns an Expected failure into a defect, leaving Unexpected and
// Aborted untouched.
func OrDie[A, E any](self Eff[A, E]) Eff[A, E] {
	return CatchAll(self, func(e E) Eff[A, E] { return Die[A, E](e) })
}

// OrElseSucceed recovers from an Expected failure by running thunk,
// leaving Unexpected and Aborted untouched.
func OrElseSucceed[A, E any](self Eff[A, E], thunk func() A) Eff[A, E] {
	return CatchAll(self, func(E) Eff[A, E] { return Sync[E](thunk) })
}

// Ignore maps any outcome to Ok(struct{}{}), except that an Unexpected
// defect is preserved by re-raising it via Die rather than swallowed —
// defects stay fatal unless the caller explicitly handles them first.
func Ignore[A, E any](self Eff[A, E]) Eff[struct{}, E] {
	return MatchFailure(self, func(f Failure[E]) Eff[struct{}, E] {
		if d, ok := f.Unexpected(); ok {
			return Die[struct{}, E](d)
		}
		return Succeed[E](struct{}{})
	}, func(A) Eff[struct{}, E] { return Succeed[E](struct{}{}) })
}

// propagate carries a Failure through unchanged as an Eff, regardless of
// the target success type — used where a handler intentionally declines
// to intercept a given failure kind.
func propagate[B, E any](f Failure[E]) Eff[B, E] {
	return make(func(_ *Env, onResult func(Result[B, E])) {
		onResult(Err[B](f))
	})
}

// runCatching invokes f, delivering its result as Ok or any panic as
// Unexpected.
func runCatching[B, E any](f func() B, onResult func(Result[B, E])) {
	var (
		value  B
		failed bool
		fail   Failure[E]
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				fail = UnexpectedFailure[E](r)
				failed = true
			}
		}()
		value = f()
	}()
	if failed {
		onResult(Err[B](fail))
		return
	}
	onResult(Ok[E](value))
}

// runCatchingEff invokes f to build the continuation effect and runs it,
// delivering any panic from f itself as Unexpected.
func runCatchingEff[B, E any](env *Env, onResult func(Result[B, E]), f func() Eff[B, E]) {
	var (
		next   Eff[B, E]
		failed bool
		fail   Failure[E]
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				fail = UnexpectedFailure[E](r)
				failed = true
			}
		}()
		next = f()
	}()
	if failed {
		onResult(Err[B](fail))
		return
	}
	next(env, onResult)
}
