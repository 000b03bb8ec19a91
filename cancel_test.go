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

func TestAbortControllerIdempotent(t *testing.T) {
	c := effect.NewAbortController()
	require.False(t, c.Signal().Aborted())

	fired := 0
	c.Signal().OnAbort(func() { fired++ })

	c.Abort()
	c.Abort()
	c.Abort()

	assert.True(t, c.Signal().Aborted())
	assert.Equal(t, 1, fired)
}

func TestAbortSignalOnAbortAfterFire(t *testing.T) {
	c := effect.NewAbortController()
	c.Abort()

	called := false
	c.Signal().OnAbort(func() { called = true })
	assert.True(t, called, "handler registered after abort should run immediately")
}

func TestAnyAbortSignal(t *testing.T) {
	a := effect.NewAbortController()
	b := effect.NewAbortController()
	composite := effect.AnyAbortSignal(a.Signal(), b.Signal())

	require.False(t, composite.Aborted())
	b.Abort()
	assert.True(t, composite.Aborted())
}

func TestAnyAbortSignalEmpty(t *testing.T) {
	composite := effect.AnyAbortSignal()
	assert.False(t, composite.Aborted())
}

func TestAbortSignalOnAbortRemove(t *testing.T) {
	c := effect.NewAbortController()

	fired := 0
	remove := c.Signal().OnAbort(func() { fired++ })
	remove()

	c.Abort()
	assert.Equal(t, 0, fired, "removed listener must not fire")
}

func TestAbortSignalOnAbortRemoveIsIdempotentAndOrderless(t *testing.T) {
	c := effect.NewAbortController()

	var stayed, removed int
	removeA := c.Signal().OnAbort(func() { removed++ })
	c.Signal().OnAbort(func() { stayed++ })
	removeA()
	removeA()

	c.Abort()
	assert.Equal(t, 0, removed)
	assert.Equal(t, 1, stayed)
}
