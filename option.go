// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

// Option and Either are minimal boundary shims for [FromOption] and
// [FromEither]: this package does not own a general-purpose option/either
// library, only the two constructors that lift one into an [Eff].

// Option represents an optional value of type A.
type Option[A any] struct {
	value A
	ok    bool
}

// Some wraps a present value.
func Some[A any](v A) Option[A] { return Option[A]{value: v, ok: true} }

// None represents an absent value.
func None[A any]() Option[A] { return Option[A]{} }

// Get returns the wrapped value and true, or the zero value and false.
func (o Option[A]) Get() (A, bool) { return o.value, o.ok }

// Either represents a value of one of two types: Left (conventionally
// failure) or Right (conventionally success).
type Either[L, R any] struct {
	left    L
	right   R
	isRight bool
}

// LeftOf wraps a left value.
func LeftOf[L, R any](l L) Either[L, R] { return Either[L, R]{left: l} }

// RightOf wraps a right value.
func RightOf[L, R any](r R) Either[L, R] { return Either[L, R]{right: r, isRight: true} }

// Left returns the left value and true, or the zero value and false.
func (e Either[L, R]) Left() (L, bool) {
	if e.isRight {
		var zero L
		return zero, false
	}
	return e.left, true
}

// Right returns the right value and true, or the zero value and false.
func (e Either[L, R]) Right() (R, bool) {
	if !e.isRight {
		var zero R
		return zero, false
	}
	return e.right, true
}
