// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// WithConcurrency runs self with policy installed as the ambient
// concurrency, for nested ForEach(..., Inherit) calls.
func WithConcurrency[A, E any](policy Concurrency, self Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		self(env.WithConcurrencyPolicy(policy), onResult)
	})
}

// ForEach runs f over items, collecting an []A in input order. concurrency
// of 1 runs strictly sequentially, stopping at the first failure and
// discarding outputs already produced; [Unbounded] or any N > 1 runs
// children concurrently under a derived child controller, cancelling the
// rest on first failure but still waiting for every in-flight child to
// report before delivering. concurrency of [Inherit] reads the ambient
// policy from env.
func ForEach[T, A, E any](items []T, f func(T) Eff[A, E], concurrency Concurrency) Eff[[]A, E] {
	return make(func(env *Env, onResult func(Result[[]A, E])) {
		c := concurrency
		if c == Inherit {
			c = env.Concurrency()
		}
		if len(items) == 0 {
			onResult(Ok[E](make([]A, 0)))
			return
		}
		if c == 1 {
			runSequential(env, items, f, onResult)
			return
		}
		runConcurrentForEach(env, items, f, int(c), onResult)
	})
}

// ForEachDiscard is [ForEach] for callers uninterested in the collected
// values, returning struct{} instead of an []A.
func ForEachDiscard[T, A, E any](items []T, f func(T) Eff[A, E], concurrency Concurrency) Eff[struct{}, E] {
	return Map(ForEach(items, f, concurrency), func([]A) struct{} { return struct{}{} })
}

func runSequential[T, A, E any](env *Env, items []T, f func(T) Eff[A, E], onResult func(Result[[]A, E])) {
	go func() {
		results := make([]A, len(items))
		chans := newChanPool[A, E]()
		for i, item := range items {
			ch := chans.acquire()
			f(item)(env, func(r Result[A, E]) { ch <- r })
			r := <-ch
			chans.release(ch)
			v, ok := r.Value()
			if !ok {
				failure, _ := r.Failure()
				onResult(Err[[]A](tagIndex(i, failure)))
				return
			}
			results[i] = v
		}
		onResult(Ok[E](results))
	}()
}

func runConcurrentForEach[T, A, E any](env *Env, items []T, f func(T) Eff[A, E], limit int, onResult func(Result[[]A, E])) {
	n := len(items)
	childController := NewAbortController()
	removeParentListener := env.Signal().OnAbort(childController.Abort)
	childEnv := env.WithController(childController)

	type outcome struct {
		idx int
		r   Result[A, E]
	}
	outcomes := make(chan outcome, n)
	var sem chan struct{}
	if limit > 0 {
		sem = make(chan struct{}, limit)
	}

	chans := newChanPool[A, E]()
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			ch := chans.acquire()
			f(items[idx])(childEnv, func(r Result[A, E]) { ch <- r })
			r := <-ch
			chans.release(ch)
			outcomes <- outcome{idx, r}
		}(i)
	}
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	results := make([]A, n)
	var firstFailure Failure[E]
	sawFailure := false
	for oc := range outcomes {
		if v, ok := oc.r.Value(); ok {
			results[oc.idx] = v
			continue
		}
		failure, _ := oc.r.Failure()
		if !sawFailure {
			firstFailure = tagIndex(oc.idx, failure)
			sawFailure = true
			childController.Abort()
		}
	}
	removeParentListener()
	if sawFailure {
		onResult(Err[[]A](firstFailure))
		return
	}
	onResult(Ok[E](results))
}

// RaceAll runs effects concurrently under a derived child controller. The
// first Ok wins: the rest are cancelled, and the winner is delivered only
// after every loser has reported completion, giving losers a chance to run
// their OnInterrupt finalizers first. If every effect fails, the first
// collected failure is delivered.
func RaceAll[A, E any](effects []Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		n := len(effects)
		if n == 0 {
			onResult(Err[A](UnexpectedFailure[E]("effect: RaceAll of zero effects")))
			return
		}
		childController := NewAbortController()
		removeParentListener := env.Signal().OnAbort(childController.Abort)
		childEnv := env.WithController(childController)

		outcomes := make(chan Result[A, E], n)
		for _, eff := range effects {
			eff := eff
			go eff(childEnv, func(r Result[A, E]) { outcomes <- r })
		}

		var winner *Result[A, E]
		var firstFailure *Failure[E]
		for received := 0; received < n; received++ {
			r := <-outcomes
			if r.IsOk() {
				if winner == nil {
					rc := r
					winner = &rc
					childController.Abort()
				}
				continue
			}
			if firstFailure == nil {
				f, _ := r.Failure()
				firstFailure = &f
			}
		}
		removeParentListener()
		if winner != nil {
			onResult(*winner)
			return
		}
		onResult(Err[A](*firstFailure))
	})
}

// RaceAllFirst is like [RaceAll], but the first outcome of either polarity
// wins; losers are still awaited before delivery.
func RaceAllFirst[A, E any](effects []Eff[A, E]) Eff[A, E] {
	return make(func(env *Env, onResult func(Result[A, E])) {
		n := len(effects)
		if n == 0 {
			onResult(Err[A](UnexpectedFailure[E]("effect: RaceAllFirst of zero effects")))
			return
		}
		childController := NewAbortController()
		removeParentListener := env.Signal().OnAbort(childController.Abort)
		childEnv := env.WithController(childController)

		outcomes := make(chan Result[A, E], n)
		for _, eff := range effects {
			eff := eff
			go eff(childEnv, func(r Result[A, E]) { outcomes <- r })
		}

		var first *Result[A, E]
		for received := 0; received < n; received++ {
			r := <-outcomes
			if first == nil {
				rc := r
				first = &rc
				childController.Abort()
			}
		}
		removeParentListener()
		onResult(*first)
	})
}
