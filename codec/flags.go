// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-gameid.
//
// go-gameid is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-gameid is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-gameid.  If not, see <https://www.gnu.org/licenses/>.

// Package codec implements the chunk compression flag bitmask and the
// priority-ordered registry that dispatches on it.
package codec

// Flags is the 16-bit per-chunk compression bitmask stored in a chunk
// record.
type Flags uint16

// Flag bit values, in ascending bit order. The order in which a reader
// tests them is the registration order in NewRegistry.
const (
	FlagCombuf       Flags = 0x001
	FlagDZRange      Flags = 0x004
	FlagZlib         Flags = 0x008
	FlagBzip         Flags = 0x010
	FlagMP3          Flags = 0x020
	FlagJPEG         Flags = 0x040
	FlagZero         Flags = 0x080
	FlagCopyComp     Flags = 0x100
	FlagLZMA         Flags = 0x200
	FlagRandomAccess Flags = 0x400
)

// Has reports whether all bits in mask are set in f.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// flagNames pairs each named bit with its textual form, used by
// DecodeFlags/EncodeFlags for the repack descriptor.
var flagNames = []struct {
	bit  Flags
	name string
}{
	{FlagCombuf, "COMBUF"},
	{FlagDZRange, "DZ_RANGE"},
	{FlagZlib, "ZLIB"},
	{FlagBzip, "BZIP"},
	{FlagMP3, "MP3"},
	{FlagJPEG, "JPEG"},
	{FlagZero, "ZERO"},
	{FlagCopyComp, "COPY"},
	{FlagLZMA, "LZMA"},
	{FlagRandomAccess, "RANDOM_ACCESS"},
}

// DecodeFlags returns the textual names of every bit set in f. A
// value of 0 decodes to a single "COPY" entry.
func DecodeFlags(f Flags) []string {
	if f == 0 {
		return []string{"COPY"}
	}
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Has(fn.bit) {
			names = append(names, fn.name)
		}
	}
	return names
}

// EncodeFlags is the inverse of DecodeFlags: "COPY" maps to
// FlagCopyComp like every other name, so a combination such as
// ["ZLIB", "COPY"] round-trips back to FlagZlib|FlagCopyComp instead
// of losing the COPYCOMP bit.
func EncodeFlags(names []string) Flags {
	var f Flags
	for _, n := range names {
		for _, fn := range flagNames {
			if fn.name == n {
				f |= fn.bit
			}
		}
	}
	return f
}
