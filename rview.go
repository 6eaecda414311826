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

import "fmt"

// RView is a read-only window [begin, end) into a Shared. RViews are
// cheap to clone and split - overlapping RViews over the same Shared
// are always allowed, since none of them can mutate the bytes they see.
//
// An RView must not be used after it has been consumed by Unsplit (as
// the argument), TryUpgrade (on success), or dropped in favor of its
// clones; doing so panics.
type RView struct {
	shared *Shared
	begin  int
	end    int
	dead   bool
}

func (v *RView) checkAlive() {
	if v.dead {
		panic("divbuf: use of a consumed RView")
	}
}

// Len returns end-begin.
func (v *RView) Len() int {
	v.checkAlive()
	return v.end - v.begin
}

// IsEmpty reports whether Len() == 0.
func (v *RView) IsEmpty() bool { return v.Len() == 0 }

// Bytes returns the view's window as a byte slice. The slice aliases
// the Shared's backing array and must be treated as read-only: the
// aliasing invariant this package enforces assumes callers never write
// through a slice obtained from an RView.
func (v *RView) Bytes() []byte {
	v.checkAlive()
	return v.shared.buf[v.begin:v.end]
}

// Clone returns a new RView over the same window, incrementing the
// Shared's read-reference count.
func (v *RView) Clone() *RView {
	v.checkAlive()
	v.shared.r++
	return &RView{shared: v.shared, begin: v.begin, end: v.end}
}

// Slice returns a new RView over [begin+a, begin+b) of v's window.
// It panics with "begin <= end" if a > b, and with "end <= self.len"
// if b is past v's length - both nonsensical-argument cases per this
// package's error boundary, not conditions a caller could fail to
// predict.
func (v *RView) Slice(a, b int) *RView {
	v.checkAlive()
	if a > b {
		panic("begin <= end")
	}
	if b > v.end-v.begin {
		panic("end <= self.len")
	}
	v.shared.r++
	return &RView{shared: v.shared, begin: v.begin + a, end: v.begin + b}
}

// SliceFrom is Slice(a, v.Len()).
func (v *RView) SliceFrom(a int) *RView {
	v.checkAlive()
	return v.Slice(a, v.Len())
}

// SliceTo is Slice(0, b).
func (v *RView) SliceTo(b int) *RView {
	v.checkAlive()
	return v.Slice(0, b)
}

// SplitOff truncates v to [begin, begin+at) and returns a new RView
// over [begin+at, end). It panics with "Can't split past the end" if
// at is out of range.
func (v *RView) SplitOff(at int) *RView {
	v.checkAlive()
	if at < 0 || at > v.end-v.begin {
		panic("Can't split past the end")
	}
	mid := v.begin + at
	v.shared.r++
	other := &RView{shared: v.shared, begin: mid, end: v.end}
	v.end = mid
	return other
}

// Unsplit merges other into v when the two windows are adjacent
// (v.end == other.begin) over the same Shared: v is extended to cover
// other's window and other is consumed. If the windows aren't
// adjacent - different Shared, a gap, or an overlap - Unsplit returns
// ErrNotAdjacent and leaves both v and other unchanged.
func (v *RView) Unsplit(other *RView) error {
	v.checkAlive()
	other.checkAlive()
	if v.shared != other.shared || v.end != other.begin {
		return ErrNotAdjacent
	}
	v.end = other.end
	other.shared.r--
	other.dead = true
	return nil
}

// TryUpgrade consumes v and returns a WView over the same window, but
// only if v is the sole live view over its Shared (no other RView, no
// WView). Otherwise it returns ErrNotUpgradable and v is left intact
// and still usable.
func (v *RView) TryUpgrade() (*WView, error) {
	v.checkAlive()
	if v.shared.r != 1 || v.shared.w != 0 {
		return nil, ErrNotUpgradable
	}
	v.shared.r--
	v.shared.w++
	v.dead = true
	return &WView{shared: v.shared, begin: v.begin, end: v.end}, nil
}

// Close releases v's hold on its Shared's read-reference count. This
// is the ordinary way to destroy a view that isn't being consumed by
// Unsplit, TryUpgrade, or WView.Freeze - those already transfer or
// release the reference as part of what they do.
func (v *RView) Close() {
	v.checkAlive()
	v.shared.r--
	v.dead = true
}

// Equal reports whether v's window has the same content as b.
func (v *RView) Equal(b []byte) bool {
	v.checkAlive()
	return bytesEqual(v.Bytes(), b)
}

// Hash returns a SipHash-2-4 digest of v's window content, such that
// two views (or a view and a raw slice) with equal content hash
// equally.
func (v *RView) Hash() uint64 {
	v.checkAlive()
	return hashBytes(v.Bytes())
}

// String renders a short diagnostic summary; it is not used for
// equality or hashing.
func (v *RView) String() string {
	return fmt.Sprintf("RView[%d:%d]/%d", v.begin, v.end, v.shared.Len())
}
