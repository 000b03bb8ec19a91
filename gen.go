// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Gen drives a generator-style thunk that sequences effects by calling
// [Yield] instead of chaining [FlatMap] explicitly. The thunk runs on its
// own goroutine; Yield hands the yielded effect to the driver loop and
// blocks until it settles, the idiomatic Go stand-in for a language-level
// generator/yield — Go has no native stackful coroutine syntax, so a
// dedicated goroutine plus a pair of rendezvous channels plays the role
// the original single-threaded interpreter's re-entrant step loop does.
//
// Each Gen value is single-shot: running it spins up a fresh goroutine and
// fresh channels, and that goroutine runs the thunk exactly once.
type Gen[E any] struct {
	toDriver   chan genRequest[E]
	fromDriver chan genResponse[E]
}

type genRequest[E any] struct {
	eff Eff[any, E]
}

type genResponse[E any] struct {
	value   any
	failure Failure[E]
	failed  bool
}

type genFailure[E any] struct {
	failure Failure[E]
}

type genResult[A, E any] struct {
	value   A
	failure Failure[E]
	failed  bool
}

// Yield suspends the generator until eff settles, returning its success
// value. A failure from eff unwinds the generator thunk immediately — it
// never returns — and is delivered as the surrounding [Gen]'s own outcome.
func Yield[E, X any](g *Gen[E], eff Eff[X, E]) X {
	erased := Map(eff, func(x X) any { return x })
	g.toDriver <- genRequest[E]{eff: erased}
	resp := <-g.fromDriver
	if resp.failed {
		panic(genFailure[E]{failure: resp.failure})
	}
	v, _ := resp.value.(X)
	return v
}

// Do runs thunk as a generator, sequencing every [Yield] call within it.
// A panic from thunk itself (other than the internal unwind [Yield] uses
// to propagate a failure) is caught and delivered as Unexpected.
func Do[E, A any](thunk func(g *Gen[E]) A) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		g := &Gen[E]{
			toDriver:   make(chan genRequest[E]),
			fromDriver: make(chan genResponse[E]),
		}
		resultCh := make(chan genResult[A, E], 1)
		go func() {
			defer func() {
				if r := recover(); r != nil {
					if gf, ok := r.(genFailure[E]); ok {
						resultCh <- genResult[A, E]{failure: gf.failure, failed: true}
						return
					}
					resultCh <- genResult[A, E]{failure: UnexpectedFailure[E](r), failed: true}
				}
			}()
			a := thunk(g)
			resultCh <- genResult[A, E]{value: a}
		}()
		driveGen(env, g, resultCh, onResult)
	})
}

func driveGen[A, E any](env *Env, g *Gen[E], resultCh chan genResult[A, E], onResult func(Result[A, E])) {
	for {
		select {
		case req := <-g.toDriver:
			req.eff(env, func(r Result[any, E]) {
				if v, ok := r.Value(); ok {
					g.fromDriver <- genResponse[E]{value: v}
					return
				}
				f, _ := r.Failure()
				g.fromDriver <- genResponse[E]{failure: f, failed: true}
			})
		case res := <-resultCh:
			if res.failed {
				onResult(Err[A](res.failure))
				return
			}
			onResult(Ok[E](res.value))
			return
		}
	}
}
