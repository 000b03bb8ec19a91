// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import (
	"errors"
	"fmt"
)

// indexedError tags a defect with the input-slice index of the [ForEach]
// child that produced it, recoverable via errors.As without needing to
// know the wrapper type up front.
type indexedError struct {
	index int
	err   error
}

func (e *indexedError) Error() string {
	return fmt.Sprintf("effect: forEach[%d]: %v", e.index, e.err)
}

func (e *indexedError) Unwrap() error { return e.err }

// ForEachFailureIndex returns the input-slice index of the [ForEach] child
// whose defect produced err, and true, if err (or something it wraps) was
// tagged by a failing ForEach child.
func ForEachFailureIndex(err error) (int, bool) {
	var ie *indexedError
	if errors.As(err, &ie) {
		return ie.index, true
	}
	return 0, false
}

// tagIndex rewraps an Unexpected failure's defect with its originating
// slot index. Expected failures are left untouched: E is caller-defined
// and not guaranteed to be an error, so there is no generic wrapper to
// attach an index to.
func tagIndex[E any](idx int, f Failure[E]) Failure[E] {
	if !f.IsUnexpected() {
		return f
	}
	d, _ := f.Unexpected()
	return UnexpectedFailure[E](&indexedError{index: idx, err: d})
}
