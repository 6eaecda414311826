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

// Package memlock allocates divbuf.Shared backing storage on pages
// pinned against swap, for buffers a network stack can't afford to
// have paged out mid-flight (receive/send buffers, key material).
// Pinning is best-effort: platforms without support still get a
// correct, merely unpinned, Shared back.
package memlock

import (
	"errors"

	"github.com/arbufio/divbuf"
)

// ErrLockUnsupported is returned by LockedShared on a platform with no
// page-locking backend. It is advisory, not fatal: the Shared returned
// alongside it is still valid, just not pinned.
var ErrLockUnsupported = errors.New("divbuf/memlock: page locking not supported on this platform")

// LockedShared allocates a Shared of length 0 and capacity exactly c
// with its backing pages locked against swap, where the platform
// supports it.
//
// Growing the Shared past c via WView.Extend or WView.Reserve
// reallocates into fresh, unlocked memory - Go's append has no hook
// for pinning a grown array - so callers that need the pinning
// guarantee to hold for the buffer's whole life should reserve the
// full capacity they'll need up front with LockedShared and never grow
// past it.
func LockedShared(c int) (*divbuf.Shared, error) {
	if c < 0 {
		c = 0
	}
	raw := make([]byte, c, c)
	err := lockPages(raw)
	return divbuf.SharedFromSlice(raw[:0]), err
}

// UnlockAndClose unlocks s's backing pages and releases the Shared, the
// memlock-aware counterpart to Shared.Close. s must have no live view,
// exactly as for Shared.Close.
func UnlockAndClose(s *divbuf.Shared) error {
	buf := s.Detach()
	return unlockPages(buf[:cap(buf)])
}
