// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/effect"
)

func TestSleepCompletesAfterDuration(t *testing.T) {
	start := time.Now()
	r := effect.Run(effect.Sleep[string](20 * time.Millisecond))
	assert.True(t, r.IsOk())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSleepAbortsOnCancellation(t *testing.T) {
	controller := effect.NewAbortController()
	env := effect.NewEnv().WithController(controller)

	done := make(chan effect.Result[struct{}, string], 1)
	effect.Sleep[string](time.Hour)(env, func(r effect.Result[struct{}, string]) { done <- r })

	time.Sleep(5 * time.Millisecond)
	controller.Abort()

	select {
	case r := <-done:
		f, _ := r.Failure()
		assert.True(t, f.IsAborted())
	case <-time.After(time.Second):
		t.Fatal("sleep did not abort on cancellation")
	}
}

func TestDelayRunsSelfAfterDuration(t *testing.T) {
	start := time.Now()
	r := effect.Run(effect.Delay(effect.Succeed[string](3), 15*time.Millisecond))
	v, _ := r.Value()
	assert.Equal(t, 3, v)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}

func TestTimeoutSomeWhenSelfWinsAndNoneWhenTimerWins(t *testing.T) {
	fast := effect.Run(effect.Timeout(effect.Succeed[string](9), 50*time.Millisecond))
	v, _ := fast.Value()
	got, ok := v.Get()
	require.True(t, ok)
	assert.Equal(t, 9, got)

	slow := effect.Run(effect.Timeout(effect.Sleep[string](50*time.Millisecond), 5*time.Millisecond))
	sv, _ := slow.Value()
	_, ok = sv.Get()
	assert.False(t, ok)
}

func TestTimeoutOrElseRunsFallbackOnExpiry(t *testing.T) {
	r := effect.Run(effect.TimeoutOrElse(
		effect.Sleep[string](50*time.Millisecond),
		5*time.Millisecond,
		func() effect.Eff[struct{}, string] { return effect.Succeed[string](struct{}{}) },
	))
	assert.True(t, r.IsOk())
}
