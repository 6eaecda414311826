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

package divbuf

import (
	"github.com/google/uuid"
)

// Shared owns one contiguous backing array plus the read- and
// write-reference counts that track how many RViews and WViews
// currently alias it. Shared itself is never mutated through a public
// method other than the view-issuing, Close and Detach methods below; all byte
// access goes through the views it produces.
type Shared struct {
	id  uuid.UUID
	buf []byte // len(buf) is L, cap(buf) is C

	r int // live RViews
	w int // live WViews
}

// NewShared returns a Shared with length 0 and capacity at least c.
func NewShared(c int) *Shared {
	if c < 0 {
		panic("divbuf: negative capacity")
	}
	return &Shared{id: uuid.New(), buf: make([]byte, 0, c)}
}

// SharedFromBytes copies s into a freshly allocated Shared of length
// len(s).
func SharedFromBytes(s []byte) *Shared {
	buf := make([]byte, len(s))
	copy(buf, s)
	return &Shared{id: uuid.New(), buf: buf}
}

// SharedFromSlice adopts v's storage without copying: the returned
// Shared has length len(v) and capacity cap(v). The caller must not
// retain or mutate v directly afterward; ownership of the backing
// array passes to the Shared.
func SharedFromSlice(v []byte) *Shared {
	return &Shared{id: uuid.New(), buf: v}
}

// ID returns a process-unique identifier assigned at construction. It
// has no effect on any operation's outcome; it exists purely so
// diagnostics can name which Shared misbehaved when many are alive at
// once.
func (s *Shared) ID() uuid.UUID { return s.id }

// Len returns the Shared's current logical length L.
func (s *Shared) Len() int { return len(s.buf) }

// Cap returns the Shared's current backing-array capacity C.
func (s *Shared) Cap() int { return cap(s.buf) }

// IsEmpty reports whether Len() == 0.
func (s *Shared) IsEmpty() bool { return len(s.buf) == 0 }

// RefCounts returns the current read- and write-reference counts, for
// diagnostics and tests. It is not part of the aliasing algebra.
func (s *Shared) RefCounts() (r, w int) { return s.r, s.w }

// TryRead returns a new RView over the whole Shared, or ErrInUseByWriter
// if a WView is currently live.
func (s *Shared) TryRead() (*RView, error) {
	if s.w > 0 {
		return nil, ErrInUseByWriter
	}
	s.r++
	return &RView{shared: s, begin: 0, end: len(s.buf)}, nil
}

// TryWrite returns a new WView over the whole Shared, or ErrInUse if any
// RView or WView is currently live. Only the first WView over a
// quiescent Shared is created this way; further WViews are produced by
// splitting this one.
func (s *Shared) TryWrite() (*WView, error) {
	if s.r > 0 || s.w > 0 {
		return nil, ErrInUse
	}
	s.w++
	return &WView{shared: s, begin: 0, end: len(s.buf)}, nil
}

// Close releases the Shared's backing array. It is a fatal programming
// error to call Close while any view is still live; doing so aborts the
// process rather than silently leaking aliases or racing a live view.
func (s *Shared) Close() {
	s.guardQuiescent()
	s.buf = nil
}

// Detach behaves like Close but returns the backing array - full
// capacity, zero length - instead of discarding it, so a pool can
// recycle the allocation. It is the same fatal error to call Detach
// while any view is still live.
func (s *Shared) Detach() []byte {
	s.guardQuiescent()
	buf := s.buf[:0:cap(s.buf)]
	s.buf = nil
	return buf
}

func (s *Shared) guardQuiescent() {
	if s.r+s.w > 0 {
		errorf("divbuf: shared %s released while referenced (r=%d w=%d)", s.id, s.r, s.w)
		panic("Dropping a Shared that's still referenced")
	}
}
