// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package effect

import "sync"

// chanPool recycles single-slot, buffered Result channels across the many
// short-lived await points a [ForEach] loop creates — one per item, every
// iteration: acquire a pooled value, use it exactly once, drain and
// release it for reuse, rather than allocating a fresh channel per use.
type chanPool[A, E any] struct {
	pool sync.Pool
}

func newChanPool[A, E any]() *chanPool[A, E] {
	return &chanPool[A, E]{
		pool: sync.Pool{New: func() any { return make(chan Result[A, E], 1) }},
	}
}

// acquire returns a pooled, empty channel ready to receive one Result.
func (p *chanPool[A, E]) acquire() chan Result[A, E] {
	return p.pool.Get().(chan Result[A, E])
}

// release drains any stale value left in ch (there should never be one for
// a channel used correctly) and returns it to the pool.
func (p *chanPool[A, E]) release(ch chan Result[A, E]) {
	select {
	case <-ch:
	default:
	}
	p.pool.Put(ch)
}
