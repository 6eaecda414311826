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

import "errors"

// Recoverable failures, returned as sentinel errors so callers can
// distinguish them with errors.Is. Precondition violations (bad
// indices, use of a consumed view) are not in this set; they panic,
// since the caller could have checked them statically and didn't.
var (
	// ErrInUseByWriter is returned by Shared.TryRead when a WView
	// is already live over the Shared.
	ErrInUseByWriter = errors.New("divbuf: in use by writer")

	// ErrInUse is returned by Shared.TryWrite when any RView or
	// WView is already live over the Shared.
	ErrInUse = errors.New("divbuf: in use")

	// ErrNotUpgradable is returned by RView.TryUpgrade when the
	// RView is not the sole live view over its Shared.
	ErrNotUpgradable = errors.New("divbuf: not upgradable")

	// ErrNotTerminal is returned by WView.TryExtend and
	// WView.TryTruncate when the view does not reach the end of
	// the Shared's current length.
	ErrNotTerminal = errors.New("divbuf: not terminal")

	// ErrNotAdjacent is returned by RView.Unsplit and WView.Unsplit
	// when the two views don't share a Shared or don't abut.
	ErrNotAdjacent = errors.New("divbuf: not adjacent")
)
