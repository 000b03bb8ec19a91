// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/effect"
)

func TestDoSequencesYields(t *testing.T) {
	eff := effect.Do(func(g *effect.Gen[string]) int {
		a := effect.Yield(g, effect.Succeed[string](1))
		b := effect.Yield(g, effect.Succeed[string](2))
		return a + b
	})
	r := effect.Run(eff)
	v, _ := r.Value()
	assert.Equal(t, 3, v)
}

func TestDoUnwindsOnYieldedFailure(t *testing.T) {
	ranAfter := false
	eff := effect.Do(func(g *effect.Gen[string]) int {
		_ = effect.Yield(g, effect.Fail[int]("boom"))
		ranAfter = true
		return 0
	})
	r := effect.Run(eff)
	require.False(t, r.IsOk())
	f, _ := r.Failure()
	e, _ := f.Expected()
	assert.Equal(t, "boom", e)
	assert.False(t, ranAfter, "a failing yield must unwind the generator thunk immediately")
}

func TestDoCatchesThunkPanicAsUnexpected(t *testing.T) {
	eff := effect.Do(func(g *effect.Gen[string]) int {
		panic("thunk exploded")
	})
	r := effect.Run(eff)
	f, _ := r.Failure()
	require.True(t, f.IsUnexpected())
	d, _ := f.Unexpected()
	assert.Contains(t, d.Error(), "thunk exploded")
}

func TestDoManySequentialYieldsDoNotOverflowTheStack(t *testing.T) {
	const n = 50_000
	eff := effect.Do(func(g *effect.Gen[string]) int {
		total := 0
		for i := 0; i < n; i++ {
			total += effect.Yield(g, effect.Succeed[string](1))
		}
		return total
	})
	r := effect.Run(eff)
	v, _ := r.Value()
	assert.Equal(t, n, v)
}
