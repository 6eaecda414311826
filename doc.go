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

// Package divbuf implements a divisible, reference-counted byte buffer.
//
// A Shared owns one contiguous backing array. RViews and WViews are
// cheap, splittable windows into that array: many RViews may overlap
// freely, but WViews over the same Shared are always disjoint. The
// aliasing rule - any number of readers, or exactly one set of disjoint
// writers, never both - is enforced with plain reference counts rather
// than the type system, since the windows a caller carves out of a
// Shared aren't known until runtime.
//
// None of the types here are safe for concurrent use from multiple
// goroutines; a Shared and the views over it form a single-threaded
// unit. See package bufpool for a concurrency-safe way to hand Shared
// values between goroutines.
package divbuf
