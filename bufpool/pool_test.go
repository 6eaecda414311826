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

package bufpool

import (
	"testing"

	"github.com/arbufio/divbuf/bufconfig"
)

func TestGetPutRoundTrip(t *testing.T) {
	p := New(&bufconfig.Config{PoolingThreshold: 64})

	s := p.Get(4096)
	if s.Cap() < 4096 {
		t.Fatalf("Cap() = %d, want >= 4096", s.Cap())
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	w, err := s.TryWrite()
	if err != nil {
		t.Fatal(err)
	}
	w.Extend([]byte("hello"))
	w.Close()
	p.Put(s)

	s2 := p.Get(4096)
	if s2.Len() != 0 {
		t.Fatalf("recycled Shared has Len() = %d, want 0", s2.Len())
	}
	if s2.Cap() < 4096 {
		t.Fatalf("recycled Shared has Cap() = %d, want >= 4096", s2.Cap())
	}
}

func TestPutWhileReferencedPanics(t *testing.T) {
	p := New(nil)
	s := p.Get(8192)
	_, err := s.TryRead()
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Put of a referenced Shared did not panic")
		}
	}()
	p.Put(s)
}

func TestBelowThresholdBypassesPool(t *testing.T) {
	p := New(&bufconfig.Config{PoolingThreshold: 1024})
	if !p.IsBelowPoolingThreshold(100) {
		t.Fatal("IsBelowPoolingThreshold(100) = false, want true")
	}
	s := p.Get(100)
	if s.Cap() < 100 {
		t.Fatalf("Cap() = %d, want >= 100", s.Cap())
	}
}
