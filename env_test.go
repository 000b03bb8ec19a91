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

func TestNewEnvDefaults(t *testing.T) {
	env := effect.NewEnv()
	require.NotNil(t, env.Controller())
	require.NotNil(t, env.Signal())
	assert.True(t, env.Interruptible())
	assert.Equal(t, effect.Unbounded, env.Concurrency())
	assert.False(t, env.Signal().Aborted())
}

func TestEnvWithersReturnCopies(t *testing.T) {
	env := effect.NewEnv()
	withBound := env.WithConcurrencyPolicy(4)

	assert.Equal(t, effect.Unbounded, env.Concurrency(), "original Env must be untouched")
	assert.Equal(t, effect.Concurrency(4), withBound.Concurrency())

	uninterruptibleEnv := env.WithInterruptible(false)
	assert.True(t, env.Interruptible())
	assert.False(t, uninterruptibleEnv.Interruptible())
}

func TestEnvWithController(t *testing.T) {
	env := effect.NewEnv()
	fresh := effect.NewAbortController()
	next := env.WithController(fresh)

	assert.Same(t, fresh, next.Controller())
	assert.Same(t, fresh.Signal(), next.Signal())
	assert.NotSame(t, env.Controller(), next.Controller())
}
