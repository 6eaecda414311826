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
	"errors"
	"testing"
)

func mustRead(t *testing.T, s *Shared) *RView {
	t.Helper()
	r, err := s.TryRead()
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// Scenario 1/2 from spec.md §8.
func TestRViewSplitOffUnsplitRoundTrip(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3, 4, 5, 6})
	v := mustRead(t, s)

	m := v.SplitOff(4)
	if !v.Equal([]byte{1, 2, 3, 4}) {
		t.Fatalf("v = %v, want [1 2 3 4]", v.Bytes())
	}
	if !m.Equal([]byte{5, 6}) {
		t.Fatalf("m = %v, want [5 6]", m.Bytes())
	}
	if r, _ := s.RefCounts(); r != 2 {
		t.Fatalf("R = %d, want 2", r)
	}

	if err := v.Unsplit(m); err != nil {
		t.Fatalf("Unsplit() = %v, want nil", err)
	}
	if !v.Equal([]byte{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("v after unsplit = %v, want [1 2 3 4 5 6]", v.Bytes())
	}
	if r, _ := s.RefCounts(); r != 1 {
		t.Fatalf("R after unsplit = %d, want 1", r)
	}
}

// Scenario 3 from spec.md §8: gap between slices is NotAdjacent.
func TestRViewUnsplitGap(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3, 4, 5, 6})
	a := mustRead(t, s)
	b := a.SliceTo(2)
	c := a.SliceFrom(4)

	if err := b.Unsplit(c); !errors.Is(err, ErrNotAdjacent) {
		t.Fatalf("Unsplit() = %v, want ErrNotAdjacent", err)
	}
	if !b.Equal([]byte{1, 2}) {
		t.Fatalf("b mutated by failed Unsplit: %v", b.Bytes())
	}
	if !c.Equal([]byte{5, 6}) {
		t.Fatalf("c mutated by failed Unsplit: %v", c.Bytes())
	}
}

func TestRViewUnsplitDifferentShared(t *testing.T) {
	a := mustRead(t, SharedFromBytes([]byte{1, 2}))
	b := mustRead(t, SharedFromBytes([]byte{3, 4}))
	if err := a.Unsplit(b); !errors.Is(err, ErrNotAdjacent) {
		t.Fatalf("Unsplit() across Shareds = %v, want ErrNotAdjacent", err)
	}
}

func TestRViewSliceBounds(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3, 4})
	v := mustRead(t, s)

	z := v.Slice(2, 2)
	if z.Len() != 0 {
		t.Fatalf("zero-length slice has Len() = %d", z.Len())
	}

	func() {
		defer func() {
			if r := recover(); r != "begin <= end" {
				t.Fatalf("recover() = %v, want %q", r, "begin <= end")
			}
		}()
		v.Slice(3, 1)
		t.Fatal("Slice(3, 1) did not panic")
	}()

	func() {
		defer func() {
			if r := recover(); r != "end <= self.len" {
				t.Fatalf("recover() = %v, want %q", r, "end <= self.len")
			}
		}()
		v.Slice(0, 100)
		t.Fatal("Slice(0, 100) did not panic")
	}()
}

func TestRViewSplitOffPastEndPanics(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3})
	v := mustRead(t, s)
	defer func() {
		if r := recover(); r != "Can't split past the end" {
			t.Fatalf("recover() = %v, want %q", r, "Can't split past the end")
		}
	}()
	v.SplitOff(10)
}

// Scenario 4 from spec.md §8.
func TestWriteThenFreezeThenRead(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3})
	w, err := s.TryWrite()
	if err != nil {
		t.Fatal(err)
	}
	w.Bytes()[0] = 9
	w.Freeze()

	r := mustRead(t, s)
	if !r.Equal([]byte{9, 2, 3}) {
		t.Fatalf("r = %v, want [9 2 3]", r.Bytes())
	}
}

// Freeze/thaw symmetry law from spec.md §8.
func TestFreezeUpgradeSymmetry(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3, 4})
	w, err := s.TryWrite()
	if err != nil {
		t.Fatal(err)
	}
	r := w.Freeze()
	w2, err := r.TryUpgrade()
	if err != nil {
		t.Fatalf("TryUpgrade() = %v, want nil (sole RView)", err)
	}
	if !w2.Equal([]byte{1, 2, 3, 4}) {
		t.Fatalf("w2 = %v, want [1 2 3 4]", w2.Bytes())
	}
}

func TestTryUpgradeFailsWithMultipleReaders(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3})
	r1 := mustRead(t, s)
	r2 := r1.Clone()

	w, err := r1.TryUpgrade()
	if !errors.Is(err, ErrNotUpgradable) {
		t.Fatalf("TryUpgrade() = %v, want ErrNotUpgradable", err)
	}
	if w != nil {
		t.Fatal("TryUpgrade returned non-nil WView on failure")
	}
	// r1 must still be usable.
	if !r1.Equal([]byte{1, 2, 3}) {
		t.Fatalf("r1 damaged by failed TryUpgrade: %v", r1.Bytes())
	}
	_ = r2
}

func TestHashMatchesEqualContent(t *testing.T) {
	s1 := SharedFromBytes([]byte("hello, divbuf"))
	s2 := SharedFromBytes([]byte("hello, divbuf"))
	r1 := mustRead(t, s1)
	r2 := mustRead(t, s2)
	if r1.Hash() != r2.Hash() {
		t.Fatal("equal-content views hashed differently")
	}
	r3 := mustRead(t, SharedFromBytes([]byte("different")))
	if r1.Hash() == r3.Hash() {
		t.Fatal("different-content views hashed the same (collision in a tiny test is suspicious)")
	}
}

func TestRViewCloseAllowsSharedClose(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3})
	r := mustRead(t, s)
	r.Close()
	if rr, _ := s.RefCounts(); rr != 0 {
		t.Fatalf("R after Close = %d, want 0", rr)
	}
	s.Close() // must not panic
}

func TestConsumedRViewPanics(t *testing.T) {
	s := SharedFromBytes([]byte{1, 2, 3, 4})
	v := mustRead(t, s)
	m := v.SplitOff(2)
	if err := v.Unsplit(m); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("use of consumed RView did not panic")
		}
	}()
	m.Len()
}
