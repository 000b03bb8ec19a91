// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// abortListener is a registered [AbortSignal.OnAbort] callback, keyed by id
// so it can be removed again before it fires; removeAbortListener below is
// the DOM counterpart's [EventTarget.removeEventListener].
type abortListener struct {
	id uint64
	fn func()
}

// AbortSignal communicates the cancellation state of one or more computations.
// It follows the shape of the W3C DOM AbortController/AbortSignal pair:
// https://dom.spec.whatwg.org/#interface-abortsignal
//
// Safe for concurrent use from multiple goroutines.
type AbortSignal struct {
	mu       sync.Mutex
	aborted  bool
	nextID   uint64
	handlers []abortListener
}

func newAbortSignal() *AbortSignal {
	return &AbortSignal{}
}

// Aborted reports whether the signal has fired.
func (s *AbortSignal) Aborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

// OnAbort registers a callback invoked when the signal fires, and returns a
// function that removes it. If the signal has already fired, handler runs
// immediately (outside the lock) and the returned remover is a no-op.
//
// Callers that link a child's lifetime to a parent signal (Fork, RaceAll,
// RaceAllFirst, concurrent ForEach) call the remover once the child
// completes, so a long-lived parent signal does not accumulate listeners
// for children that have already finished.
func (s *AbortSignal) OnAbort(handler func()) (remove func()) {
	if handler == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.aborted {
		s.mu.Unlock()
		handler()
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, abortListener{id: id, fn: handler})
	s.mu.Unlock()
	return func() { s.removeAbortListener(id) }
}

func (s *AbortSignal) removeAbortListener(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.handlers {
		if l.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

func (s *AbortSignal) abort() {
	s.mu.Lock()
	if s.aborted {
		s.mu.Unlock()
		return
	}
	s.aborted = true
	handlers := s.handlers
	s.handlers = nil
	s.mu.Unlock()
	for _, l := range handlers {
		l.fn()
	}
}

// AbortController owns an [AbortSignal] and can fire it.
//
// Calling Abort more than once is a no-op: idempotent, so any number of
// competing cancellers can race to fire it without coordination.
type AbortController struct {
	signal *AbortSignal
}

// NewAbortController creates a controller with a fresh, unfired signal.
func NewAbortController() *AbortController {
	return &AbortController{signal: newAbortSignal()}
}

// Signal returns the controller's signal. Always the same value.
func (c *AbortController) Signal() *AbortSignal {
	return c.signal
}

// Abort fires the controller's signal, notifying every registered handler
// exactly once. Subsequent calls are no-ops.
func (c *AbortController) Abort() {
	c.signal.abort()
}

// AnyAbortSignal returns a composite signal that fires as soon as any of
// signals fires, the same shape as the DOM's AbortSignal.any() static
// method. Used to derive a race/forEach child signal when more than one
// parent signal must be honored at once; the common parent-to-child link
// used elsewhere in this package only ever has a single parent, and uses a
// plain [AbortSignal.OnAbort] listener instead.
func AnyAbortSignal(signals ...*AbortSignal) *AbortSignal {
	composite := newAbortSignal()
	if len(signals) == 0 {
		return composite
	}
	var once sync.Once
	for _, sig := range signals {
		if sig == nil {
			continue
		}
		sig.OnAbort(func() {
			once.Do(composite.abort)
		})
	}
	return composite
}
