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

// Package coldstore compresses buffer content that won't be touched for
// a while into a Snapshot, freeing the live Shared for reuse, and
// reconstitutes a Shared from a Snapshot on demand. Freeze requires
// sole ownership of the source buffer: the same rule TryUpgrade
// enforces, since turning a view cold is itself a kind of exclusive
// consumption of it.
package coldstore

import (
	"errors"

	"github.com/arbufio/divbuf"
	"github.com/klauspost/compress/s2"
	"golang.org/x/crypto/blake2b"
)

// ErrNotSoleView is returned by Freeze when r is not the only
// outstanding view of its Shared, mirroring RView.TryUpgrade's
// ownership rule.
var ErrNotSoleView = errors.New("divbuf/coldstore: not the sole view of its buffer")

// ErrFingerprintMismatch is returned by Thaw when a Snapshot's
// decompressed content no longer hashes to the fingerprint recorded at
// Freeze time.
var ErrFingerprintMismatch = errors.New("divbuf/coldstore: fingerprint mismatch on thaw")

// Snapshot is the compressed, content-addressed form of a buffer's
// content. It holds no reference into a Shared and carries no
// reader/writer count of its own: once frozen, the original Shared is
// fully released and may be recycled.
type Snapshot struct {
	fingerprint [blake2b.Size256]byte
	compressed  []byte
	length      int
}

// Len reports the length of the original, uncompressed content.
func (s *Snapshot) Len() int { return s.length }

// CompressedLen reports the size of the snapshot's compressed
// representation, for callers tracking cold-storage footprint.
func (s *Snapshot) CompressedLen() int { return len(s.compressed) }

// Freeze takes sole ownership of r's content, compresses it, and
// releases r's Shared so it can return to a pool. r must be the only
// outstanding view onto its Shared; on failure r is left intact and
// still owned by the caller.
func Freeze(r *divbuf.RView) (*Snapshot, error) {
	w, err := r.TryUpgrade()
	if err != nil {
		return nil, ErrNotSoleView
	}

	content := append([]byte(nil), w.Bytes()...)
	snap := &Snapshot{
		fingerprint: blake2b.Sum256(content),
		compressed:  s2.Encode(nil, content),
		length:      len(content),
	}

	w.Close()
	return snap, nil
}

// Thaw decompresses snap into a fresh Shared with a single unreferenced
// reader's worth of content ready to be read again with Shared.TryRead.
// It recomputes the content fingerprint and refuses to return data that
// doesn't match what Freeze recorded.
func Thaw(snap *Snapshot) (*divbuf.Shared, error) {
	content, err := s2.Decode(nil, snap.compressed)
	if err != nil {
		return nil, err
	}
	if blake2b.Sum256(content) != snap.fingerprint {
		return nil, ErrFingerprintMismatch
	}
	return divbuf.SharedFromSlice(content), nil
}
