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
	"bytes"

	"github.com/dchest/siphash"
)

// hashKey0/hashKey1 key the SipHash-2-4 content hash used by
// RView.Hash and WView.Hash. The key only needs to be fixed for the
// lifetime of a process so that two views of equal content hash
// equally within it; it is not a secret and is never derived from
// buffer content.
const (
	hashKey0 uint64 = 0x9ae16a3b2f90404f
	hashKey1 uint64 = 0xc3a5c85c97cb3127
)

func hashBytes(b []byte) uint64 {
	return siphash.Hash(hashKey0, hashKey1, b)
}

func bytesEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
