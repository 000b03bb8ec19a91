// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "github.com/pkg/errors"

// Future is the host-promise adapter [RunPromise] returns: a value that
// settles exactly once, readable synchronously via UnsafePoll or by
// blocking in Await.
type Future[A any] struct {
	done  chan struct{}
	value A
	err   error
}

// Await blocks until the future settles, returning its value or the
// translated failure — an Expected failure's typed error wrapped in
// [ExpectedError], an Unexpected failure's captured defect, or [ErrAborted].
func (f *Future[A]) Await() (A, error) {
	<-f.done
	return f.value, f.err
}

// Done returns a channel closed once the future has settled, for
// select-based waiting alongside other channels.
func (f *Future[A]) Done() <-chan struct{} { return f.done }

// UnsafePoll returns the future's value and true if it has settled, or the
// zero value and false otherwise.
func (f *Future[A]) UnsafePoll() (A, bool) {
	select {
	case <-f.done:
		return f.value, true
	default:
		var zero A
		return zero, false
	}
}

// RunPromise runs eff against a fresh root [Env] on its own goroutine,
// returning a [Future] immediately — the adapter from an Eff to the host's
// async primitive.
func RunPromise[A, E any](eff Eff[A, E]) *Future[A] {
	fut := &Future[A]{done: make(chan struct{})}
	go func() {
		r := RunEnv(NewEnv(), eff)
		fut.value, fut.err = AsEither(r)
		close(fut.done)
	}()
	return fut
}

// RunSync runs eff against a fresh root [Env] and requires it to settle
// before this call returns. If it does not — because it suspended on an
// [Async] registration, a [Sleep], or a forked child it never joined
// synchronously — RunSync returns an Unexpected-flavored error rather than
// blocking.
func RunSync[A, E any](eff Eff[A, E]) (A, error) {
	env := NewEnv()
	var (
		result Result[A, E]
		done   bool
	)
	eff(env, func(r Result[A, E]) {
		result = r
		done = true
	})
	if !done {
		var zero A
		return zero, errors.New("effect: RunSync: effect did not complete synchronously")
	}
	return AsEither(result)
}
