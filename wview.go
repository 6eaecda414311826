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
	"fmt"
	"io"
)

// WView is an exclusive, mutable window [begin, end) into a Shared.
// Disjoint WViews may coexist as siblings produced by SplitOff/SplitTo;
// only the view whose window reaches the Shared's current length (a
// "terminal" view) may grow or shrink the underlying storage, since
// resizing the backing array can move or truncate bytes that a
// non-terminal sibling to the right still needs.
//
// A WView must not be used after it has been consumed by Unsplit (as
// the argument) or Freeze; doing so panics.
type WView struct {
	shared *Shared
	begin  int
	end    int
	dead   bool
}

func (v *WView) checkAlive() {
	if v.dead {
		panic("divbuf: use of a consumed WView")
	}
}

// terminal reports whether v's window reaches the Shared's current
// length. It is derived on every call rather than cached, since the
// Shared's length can change underneath any terminal WView.
func (v *WView) terminal() bool {
	return v.end == len(v.shared.buf)
}

// Len returns end-begin.
func (v *WView) Len() int {
	v.checkAlive()
	return v.end - v.begin
}

// IsEmpty reports whether Len() == 0.
func (v *WView) IsEmpty() bool { return v.Len() == 0 }

// Bytes returns the view's window as a mutable byte slice aliasing the
// Shared's backing array. The disjointness invariant between live
// WViews means it's always safe to write anywhere in the returned
// slice.
func (v *WView) Bytes() []byte {
	v.checkAlive()
	return v.shared.buf[v.begin:v.end]
}

// SplitOff partitions [begin, end) into [begin, begin+at), retained by
// v, and [begin+at, end), returned as a new sibling WView. Both
// siblings inherit write permission over their half; the returned
// sibling is terminal iff v was terminal, and v stops being terminal
// in that case unless at == Len(). Panics with "Can't split past the
// end" if at is out of range.
func (v *WView) SplitOff(at int) *WView {
	v.checkAlive()
	if at < 0 || at > v.end-v.begin {
		panic("Can't split past the end")
	}
	mid := v.begin + at
	v.shared.w++
	other := &WView{shared: v.shared, begin: mid, end: v.end}
	v.end = mid
	return other
}

// SplitTo partitions [begin, end) into [begin, begin+at), returned as
// a new sibling WView, and [begin+at, end), retained by v. v keeps its
// terminal status (its end doesn't move); the returned prefix is
// terminal only in the degenerate case where v was terminal and
// at == Len(), so the prefix takes v's whole window. Panics with
// "Can't split past the end" if at is out of range.
func (v *WView) SplitTo(at int) *WView {
	v.checkAlive()
	if at < 0 || at > v.end-v.begin {
		panic("Can't split past the end")
	}
	mid := v.begin + at
	v.shared.w++
	prefix := &WView{shared: v.shared, begin: v.begin, end: mid}
	v.begin = mid
	return prefix
}

// Unsplit merges other into v when the two windows are adjacent
// (v.end == other.begin) over the same Shared: v is extended to cover
// other's window and other is consumed. If the windows aren't
// adjacent, Unsplit returns ErrNotAdjacent and leaves both v and other
// unchanged.
func (v *WView) Unsplit(other *WView) error {
	v.checkAlive()
	other.checkAlive()
	if v.shared != other.shared || v.end != other.begin {
		return ErrNotAdjacent
	}
	v.end = other.end
	other.shared.w--
	other.dead = true
	return nil
}

// Freeze consumes v and returns an RView over the same window. It
// always succeeds: downgrading from exclusive to shared access can
// never violate the aliasing invariant.
func (v *WView) Freeze() *RView {
	v.checkAlive()
	v.shared.w--
	v.shared.r++
	v.dead = true
	return &RView{shared: v.shared, begin: v.begin, end: v.end}
}

// Reserve ensures the Shared's capacity is at least its current length
// plus n, reallocating the backing array if necessary. Only a
// terminal WView may reserve; calling this on a non-terminal view
// panics with "reserve from the middle of a buffer" regardless of
// whether the view is empty, since the library cannot tell an
// intentional mid-buffer reserve from a caller bug.
func (v *WView) Reserve(n int) {
	v.checkAlive()
	if !v.terminal() {
		panic("reserve from the middle of a buffer")
	}
	if n <= 0 {
		return
	}
	need := len(v.shared.buf) + n
	if cap(v.shared.buf) >= need {
		return
	}
	grown := make([]byte, len(v.shared.buf), need)
	copy(grown, v.shared.buf)
	v.shared.buf = grown
}

// Extend appends p to the Shared's storage and grows v.end in
// lockstep, so v continues to reach the new length. Only a terminal
// WView may extend; calling this on a non-terminal view panics with
// "extend into the middle of a buffer".
func (v *WView) Extend(p []byte) {
	v.checkAlive()
	if !v.terminal() {
		panic("extend into the middle of a buffer")
	}
	v.shared.buf = append(v.shared.buf, p...)
	v.end = len(v.shared.buf)
}

// TryExtend is the non-panicking form of Extend: it returns
// ErrNotTerminal instead of aborting when v does not reach the
// Shared's current length, and leaves the Shared unmodified in that
// case.
func (v *WView) TryExtend(p []byte) error {
	v.checkAlive()
	if !v.terminal() {
		return ErrNotTerminal
	}
	v.shared.buf = append(v.shared.buf, p...)
	v.end = len(v.shared.buf)
	return nil
}

// TryTruncate shrinks the Shared's length to begin + min(n, Len()),
// updating v.end to match, but only if v is terminal; otherwise it
// returns ErrNotTerminal without mutating anything. Truncating to a
// length at or beyond v's current length is a no-op success, not an
// error - this clamps silently rather than rejecting, matching the
// observed behavior of the library this package's algebra is modeled
// on.
func (v *WView) TryTruncate(n int) error {
	v.checkAlive()
	if n < 0 {
		panic("divbuf: truncate length must be >= 0")
	}
	if !v.terminal() {
		return ErrNotTerminal
	}
	keep := n
	if cur := v.end - v.begin; keep > cur {
		keep = cur
	}
	newLen := v.begin + keep
	v.shared.buf = v.shared.buf[:newLen]
	v.end = newLen
	return nil
}

// Write implements io.Writer over a terminal WView: it appends p via
// TryExtend and reports ErrNotTerminal as an error rather than a
// panic, so a terminal WView can be handed to ordinary io.Copy-style
// plumbing without every caller needing to know about terminality.
func (v *WView) Write(p []byte) (int, error) {
	if err := v.TryExtend(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close releases v's hold on its Shared's write-reference count. This
// is the ordinary way to destroy a view that isn't being consumed by
// Unsplit or Freeze.
func (v *WView) Close() {
	v.checkAlive()
	v.shared.w--
	v.dead = true
}

// Read copies from v's window into p, advancing v.begin by the number
// of bytes copied, and returns io.EOF once the window is exhausted.
// This lets a WView - terminal or not - be handed directly to
// io.Copy-style scatter/gather assembly as a one-shot source.
func (v *WView) Read(p []byte) (int, error) {
	v.checkAlive()
	n := copy(p, v.shared.buf[v.begin:v.end])
	v.begin += n
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// WriteTo writes v's entire remaining window to w, advancing v.begin
// to v.end.
func (v *WView) WriteTo(w io.Writer) (int64, error) {
	v.checkAlive()
	n, err := w.Write(v.shared.buf[v.begin:v.end])
	v.begin += n
	return int64(n), err
}

// Equal reports whether v's window has the same content as b.
func (v *WView) Equal(b []byte) bool {
	v.checkAlive()
	return bytesEqual(v.Bytes(), b)
}

// Hash returns a SipHash-2-4 digest of v's current window content. A
// subsequent mutation through v.Bytes() invalidates any previously
// computed hash, same as it would for any content hash of a mutable
// buffer.
func (v *WView) Hash() uint64 {
	v.checkAlive()
	return hashBytes(v.Bytes())
}

// String renders a short diagnostic summary; it is not used for
// equality or hashing.
func (v *WView) String() string {
	return fmt.Sprintf("WView[%d:%d]/%d", v.begin, v.end, v.shared.Len())
}
