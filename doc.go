// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package effect provides a small, structured-concurrency effect runtime.
//
// The core type [Eff] represents a suspended computation that, when run
// against an [Env], delivers exactly one [Result] to a continuation
// callback. This encoding — continuation-passing, but not required to be
// synchronous — lets the same value describe work that completes
// immediately, after a timer, after a goroutine finishes, or never.
//
// # Design Philosophy
//
// effect provides:
//   - A minimal failure algebra ([ExpectedFailure], [UnexpectedFailure],
//     [AbortedFailure])
//     that keeps recoverable errors, programmer defects, and cancellation
//     distinct all the way to the boundary.
//   - Structured concurrency ([Fork], [Handle], [RaceAll], [ForEach])
//     built on goroutines and a DOM-shaped [AbortSignal] rather than a
//     bespoke scheduler.
//   - Scoped, ordered finalization ([Scope], [AcquireRelease],
//     [AcquireUseRelease]) so resource cleanup runs exactly once per
//     acquisition regardless of how the using computation exits.
//   - Interruptibility regions ([Uninterruptible], [Interruptible],
//     [UninterruptibleMask]) so cancellation is only ever observed at
//     well-defined checkpoints.
//
// # Core Operations
//
// Minimal effect operations:
//
//   - [Succeed]: Lift a pure value into a computation
//   - [Fail]: Lift a typed, recoverable error
//   - [Die]: Lift an unplanned defect
//   - [FlatMap]: Sequence two computations
//
// Derived operations:
//
//   - [Map]: Apply a function to the result
//   - [AndThen]: Sequence, discarding the first result
//   - [Tap]: Run a side-effecting continuation without changing the result
//
// Execution:
//
//   - [Sync]: Wrap a thunk that may panic into a computation
//   - [Async]: Register a callback-driven computation
//   - [Run]: Execute a computation against a fresh [Env], blocking for
//     the result
//   - [RunFork]: Execute a computation on its own goroutine, returning a
//     [Handle] immediately
//
// # Interruptibility
//
//   - [Uninterruptible]: Run a region where cancellation is not observed
//   - [Interruptible]: Restore cancellation observation
//   - [UninterruptibleMask]: Flip to uninterruptible and hand the caller
//     a restore function back to the prior region
//
// # Structured Concurrency
//
//   - [Fork]: Start a child computation, linked to the parent's signal
//   - [ForkDaemon]: Start a child computation with its own root signal
//   - [Handle]: Observe a forked computation (Await, Join, Abort, UnsafePoll)
//   - [ForEach]: Sequential, bounded, or unbounded traversal
//   - [RaceAll]: First success wins; [RaceAllFirst]: first outcome wins
//
// # Resource Safety
//
//   - [Scope]: An ordered, reverse-run set of finalizers
//   - [Scoped]: Brackets a computation with a fresh scope
//   - [AcquireRelease]: Registers a release finalizer for a resource
//   - [AcquireUseRelease]: Acquire-use-release with guaranteed cleanup
//   - [OnResult]: Run a finalizer on every exit
//   - [OnInterrupt]: Run a finalizer only on cancellation
//
// # Generator Sequencing
//
// [Gen] drives a generator-shaped function, written with ordinary Go
// control flow, whose calls to the yield function each suspend on an
// effect and resume with its result — single-shot, like a coroutine
// body that may only be driven once.
//
// # Example
//
//	comp := effect.FlatMap(effect.Succeed[string](21), func(x int) effect.Eff[int, string] {
//		return effect.Succeed[string](x * 2)
//	})
//	result := effect.Run(comp)
//	// result == effect.Ok[string](42)
package effect
