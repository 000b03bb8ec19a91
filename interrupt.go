// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Uninterruptible runs self with a fresh abort controller and
// interruptibility disabled. Because the controller is fresh, cancellation
// of the enclosing computation is not observed by self for the duration —
// self runs to its own completion, and the enclosing scope sees the
// parent's cancellation at its own next checkpoint once self is done.
func Uninterruptible[A, E any](self Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		inner := env.WithController(NewAbortController()).WithInterruptible(false)
		self(inner, onResult)
	})
}

// Interruptible re-enables interruptibility and restores the signal owned
// by env's own controller — the inverse of [Uninterruptible].
func Interruptible[A, E any](self Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		inner := env.WithController(env.Controller()).WithInterruptible(true)
		self(inner, onResult)
	})
}

// UninterruptibleMask switches to uninterruptible (unless already there)
// and calls f with a restore function that reinstates whatever
// interruptibility was in force on entry. Use this to guarantee that
// resource bookkeeping — recording that a resource was acquired, say — is
// atomic with respect to cancellation, while still letting f opt a
// sub-region back into interruptibility.
//
// restore closes over the Env captured on entry rather than whatever Env
// its argument happens to run under, so it reinstates the original
// parent's controller and signal even when called from deep inside f.
func UninterruptibleMask[A, E any](f func(restore func(Eff[A, E]) Eff[A, E]) Eff[A, E]) Eff[A, E] {
	return make(func(outer *Env, onResult func(Result[A, E])) {
		if !outer.Interruptible() {
			restore := func(self Eff[A, E]) Eff[A, E] { return self }
			runCatchingEff(outer, onResult, func() Eff[A, E] { return f(restore) })
			return
		}
		inner := outer.WithController(NewAbortController()).WithInterruptible(false)
		restore := func(self Eff[A, E]) Eff[A, E] {
			return make(func(_ *Env, onResult func(Result[A, E])) {
				restored := outer.WithInterruptible(true)
				self(restored, onResult)
			})
		}
		runCatchingEff(inner, onResult, func() Eff[A, E] { return f(restore) })
	})
}
