// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/effect"
)

func TestForEachFailureIndexRoundTrips(t *testing.T) {
	r := effect.Run(effect.ForEach([]int{10, 20, 30}, func(i int) effect.Eff[int, string] {
		if i == 20 {
			return effect.Die[int, string](errors.New("second item blew up"))
		}
		return effect.Succeed[string](i)
	}, 1))

	f, _ := r.Failure()
	d, _ := f.Unexpected()

	idx, ok := effect.ForEachFailureIndex(d)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Contains(t, d.Error(), "second item blew up")
}

func TestForEachFailureIndexFalseForUntaggedError(t *testing.T) {
	_, ok := effect.ForEachFailureIndex(errors.New("plain error"))
	assert.False(t, ok)
}

func TestForEachFailureIndexUnwrapsWrappedError(t *testing.T) {
	r := effect.Run(effect.ForEach([]int{1, 2}, func(i int) effect.Eff[int, string] {
		if i == 2 {
			return effect.Die[int, string](errors.New("inner"))
		}
		return effect.Succeed[string](i)
	}, 1))
	f, _ := r.Failure()
	d, _ := f.Unexpected()
	wrapped := errors.Join(errors.New("context"), d)

	idx, ok := effect.ForEachFailureIndex(wrapped)
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
