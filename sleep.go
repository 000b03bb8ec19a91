// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "time"

// Sleep completes after d elapses. Cancellation before then stops the
// underlying timer and completes with Aborted, via the same
// register/cleanup mechanics every [Async] effect uses.
func Sleep[E any](d time.Duration) Eff[struct{}, E] {
	return Async[E, struct{}](func(resume func(Eff[struct{}, E]), _ *AbortSignal) func() {
		timer := time.AfterFunc(d, func() {
			resume(Succeed[E](struct{}{}))
		})
		return func() { timer.Stop() }
	})
}

// Delay runs self after d elapses.
func Delay[A, E any](self Eff[A, E], d time.Duration) Eff[A, E] {
	return AndThen(Sleep[E](d), self)
}

// Timeout races self against a timer, delivering Some(a) if self finishes
// first and None if d elapses first. Unlike [RaceAll], a failure from self
// before the timer fires propagates immediately rather than waiting out
// the duration — the first outcome of either polarity wins, the same
// semantics [RaceAllFirst] gives raceAllFirst.
func Timeout[A, E any](self Eff[A, E], d time.Duration) Eff[Option[A], E] {
	return RaceAllFirst([]Eff[Option[A], E]{
		Map(self, func(a A) Option[A] { return Some(a) }),
		Map(Sleep[E](d), func(struct{}) Option[A] { return None[A]() }),
	})
}

// TimeoutOrElse is [Timeout] followed by running orElse when the timer
// won the race.
func TimeoutOrElse[A, E any](self Eff[A, E], d time.Duration, orElse func() Eff[A, E]) Eff[A, E] {
	return FlatMap(Timeout(self, d), func(o Option[A]) Eff[A, E] {
		if v, ok := o.Get(); ok {
			return Succeed[E](v)
		}
		return orElse()
	})
}
