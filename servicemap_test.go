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

func TestServiceMapAddAndGet(t *testing.T) {
	tag := effect.NewTag[int]("count")
	sm := effect.NewServices()

	_, ok := effect.GetService(sm, tag)
	assert.False(t, ok)

	sm2 := effect.AddService(sm, tag, 42)
	v, ok := effect.GetService(sm2, tag)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	// The original map is untouched — copy-on-write.
	_, ok = effect.GetService(sm, tag)
	assert.False(t, ok)
}

func TestServiceMapShadowing(t *testing.T) {
	tag := effect.NewTag[string]("name")
	sm := effect.AddService(effect.NewServices(), tag, "first")
	sm = effect.AddService(sm, tag, "second")

	v, ok := effect.GetService(sm, tag)
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestServiceMapTagIdentity(t *testing.T) {
	a := effect.NewTag[int]("dup")
	b := effect.NewTag[int]("dup")
	sm := effect.AddService(effect.NewServices(), a, 1)

	_, ok := effect.GetService(sm, b)
	assert.False(t, ok, "distinct NewTag calls must not collide even with the same name")
}

func TestServiceMapMerge(t *testing.T) {
	tagA := effect.NewTag[int]("a")
	tagB := effect.NewTag[int]("b")

	base := effect.AddService(effect.NewServices(), tagA, 1)
	overlay := effect.AddService(effect.NewServices(), tagB, 2)
	overlay = effect.AddService(overlay, tagA, 99)

	merged := base.Merge(overlay)

	va, ok := effect.GetService(merged, tagA)
	require.True(t, ok)
	assert.Equal(t, 99, va, "overlay bindings take precedence")

	vb, ok := effect.GetService(merged, tagB)
	require.True(t, ok)
	assert.Equal(t, 2, vb)
}
