// Copyright (C) 2024 Arbufio, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package bufpool recycles the backing arrays of divbuf.Shared values
// across a size-classed set of sync.Pools, so that I/O pipelines
// issuing many short-lived buffers don't pay an allocation per
// request. It is the one component in this module that is safe to use
// concurrently from multiple goroutines; the *divbuf.Shared values it
// hands out are not - each one is single-threaded once Get returns it,
// same as any other Shared.
package bufpool

import (
	"sync"

	"github.com/arbufio/divbuf"
	"github.com/arbufio/divbuf/bufconfig"
	"github.com/arbufio/divbuf/internal/clamp"
)

// maxClass caps the size classes a Pool will track separately. Requests
// larger than this share one oversize class rather than growing the
// classes map without bound.
const maxClass = 1 << 28 // 256MiB

// Pool recycles Shared backing arrays by power-of-two size class.
type Pool struct {
	threshold int
	classes   sync.Map // int size class -> *sync.Pool
}

// New returns a Pool tuned by cfg. A nil cfg uses bufconfig.Default.
func New(cfg *bufconfig.Config) *Pool {
	if cfg == nil {
		cfg = bufconfig.Default()
	}
	return &Pool{threshold: cfg.PoolingThreshold}
}

// IsBelowPoolingThreshold reports whether a request for n bytes is too
// small to be worth recycling through a sync.Pool.
func (p *Pool) IsBelowPoolingThreshold(n int) bool {
	return n < p.threshold
}

func classFor(c int) int {
	c = clamp.Max(c, 1)
	cls := 1
	for cls < c && cls < maxClass {
		cls <<= 1
	}
	return clamp.Int(cls, 1, maxClass)
}

func (p *Pool) poolFor(class int) *sync.Pool {
	if v, ok := p.classes.Load(class); ok {
		return v.(*sync.Pool)
	}
	sp := &sync.Pool{New: func() any {
		return make([]byte, 0, class)
	}}
	actual, _ := p.classes.LoadOrStore(class, sp)
	return actual.(*sync.Pool)
}

// Get returns a quiescent Shared with capacity at least c: either a
// freshly allocated one (below the pooling threshold, or on a cold
// pool) or one recycled from a prior Put.
func (p *Pool) Get(c int) *divbuf.Shared {
	if p.IsBelowPoolingThreshold(c) {
		return divbuf.NewShared(c)
	}
	class := classFor(c)
	buf := p.poolFor(class).Get().([]byte)
	if cap(buf) < c {
		buf = make([]byte, 0, c)
	}
	return divbuf.SharedFromSlice(buf[:0])
}

// Put returns s's backing array to the pool for reuse. s must have no
// live view over it - returning a still-referenced Shared is a
// programming error, diagnosed the same way Shared.Close diagnoses
// destroying one.
func (p *Pool) Put(s *divbuf.Shared) {
	c := s.Cap()
	buf := s.Detach()
	if p.IsBelowPoolingThreshold(c) {
		return
	}
	class := classFor(c)
	p.poolFor(class).Put(buf[:0])
}
