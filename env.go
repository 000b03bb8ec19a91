// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Concurrency describes the effective concurrency a [ForEach] call runs
// with. Unbounded has no numeric limit; a positive Concurrency value is a
// hard cap on in-flight children.
type Concurrency int

// Unbounded means "no concurrency limit" for [ForEach] and [WithConcurrency].
const Unbounded Concurrency = 0

// Inherit tells [ForEach] to use the ambient [Env.Concurrency] instead of an
// explicit value.
const Inherit Concurrency = -1

// Env is the immutable-by-convention dynamic context threaded through a
// running [Eff]. Every field is read through an accessor; mutation always
// returns a new Env rather than touching the receiver, though Env may share
// unmodified substructure (the ServiceMap's persistent chain, in
// particular) with its parent for allocation efficiency.
type Env struct {
	controller    *AbortController
	signal        *AbortSignal
	interruptible bool
	concurrency   Concurrency
	services      ServiceMap
}

// NewEnv creates a root Env: a fresh [AbortController], interruptible,
// unbounded concurrency, and an empty [ServiceMap].
func NewEnv() *Env {
	c := NewAbortController()
	return &Env{
		controller:    c,
		signal:        c.Signal(),
		interruptible: true,
		concurrency:   Unbounded,
		services:      NewServices(),
	}
}

// Controller returns the cancellation controller currently in force.
func (e *Env) Controller() *AbortController { return e.controller }

// Signal returns the cancellation signal currently in force.
func (e *Env) Signal() *AbortSignal { return e.signal }

// Interruptible reports whether pending cancellation should translate to an
// immediate Aborted result at the next checkpoint.
func (e *Env) Interruptible() bool { return e.interruptible }

// Concurrency returns the inherited concurrency policy, for
// [ForEach](..., concurrency: [Inherit]).
func (e *Env) Concurrency() Concurrency { return e.concurrency }

// Services returns the ambient service map.
func (e *Env) Services() ServiceMap { return e.services }

// WithController returns a copy of e with a new controller/signal pair in force.
func (e *Env) WithController(c *AbortController) *Env {
	cp := *e
	cp.controller = c
	cp.signal = c.Signal()
	return &cp
}

// WithInterruptible returns a copy of e with the given interruptibility flag.
func (e *Env) WithInterruptible(v bool) *Env {
	cp := *e
	cp.interruptible = v
	return &cp
}

// WithConcurrencyPolicy returns a copy of e with the given concurrency policy.
func (e *Env) WithConcurrencyPolicy(c Concurrency) *Env {
	cp := *e
	cp.concurrency = c
	return &cp
}

// WithServices returns a copy of e with the given service map.
func (e *Env) WithServices(sm ServiceMap) *Env {
	cp := *e
	cp.services = sm
	return &cp
}

// checkpoint reports whether e's current state calls for an immediate
// Aborted delivery. Every effect constructor runs this check before doing
// any work, giving cancellation a deterministic point at which it takes
// effect rather than racing arbitrary in-flight work.
func (e *Env) checkpoint() bool {
	return e.interruptible && e.signal.Aborted()
}
