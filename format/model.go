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

// Package format parses and serializes the archive header: the
// string table, file-to-chunk map, chunk table, volume list, and
// optional range-coder settings block.
package format

import "github.com/zaparoo-labs/dzarchive/codec"

// Magic is the archive's four-byte signature ("DTRZ" read little
// endian as a uint32).
const Magic uint32 = 0x5A525444

// chunkListTerminator marks the end of a file's chunk-id list in the
// file-to-chunk map.
const chunkListTerminator = 0xFFFF

// ArchiveSettings is the fixed 9-byte archive header.
type ArchiveSettings struct {
	NumUserFiles   uint16
	NumDirectories uint16
	Version        uint8
}

// FileMapEntry associates one user file with its owning directory and
// the ordered list of chunk ids that make up its contents.
type FileMapEntry struct {
	DirID    uint16
	ChunkIDs []uint16
}

// ChunkSettings precedes the chunk table.
type ChunkSettings struct {
	NumArchiveFiles uint16
	NumChunks       uint16
}

// Chunk is one 16-byte chunk record.
type Chunk struct {
	Offset             uint32
	CompressedLength   uint32
	DecompressedLength uint32
	Flags              codec.Flags
	File               uint16
}

// RangeSettings is the ten-byte range-coder configuration block,
// present iff any chunk in the archive carries FlagDZRange. Its
// contents are not interpreted — reverse-engineering the range coder
// itself is out of scope — so a writer that needs this block emits it
// zero-valued.
type RangeSettings struct {
	WinSize           uint8
	Flags             uint8
	OffsetTableSize   uint8
	OffsetTables      uint8
	OffsetContexts    uint8
	RefLengthTableSize uint8
	RefLengthTables   uint8
	RefOffsetTableSize uint8
	RefOffsetTables   uint8
	BigMinMatch       uint8
}

// Header is the fully parsed archive header.
type Header struct {
	Settings      ArchiveSettings
	Strings       []string
	Files         []FileMapEntry
	ChunkSettings ChunkSettings
	Chunks        []Chunk
	Volumes       []string
	Range         *RangeSettings
}

// DirString resolves a directory id to its archive-format path. Id 0
// is always the implicit root and has no entry in the string table.
func (h *Header) DirString(dirID uint16) string {
	if dirID == 0 {
		return ""
	}
	idx := int(h.Settings.NumUserFiles) + int(dirID) - 1
	if idx < 0 || idx >= len(h.Strings) {
		return ""
	}
	return h.Strings[idx]
}

// FileName resolves a user file's basename from the string table.
func (h *Header) FileName(fileIndex int) string {
	if fileIndex < 0 || fileIndex >= int(h.Settings.NumUserFiles) {
		return ""
	}
	return h.Strings[fileIndex]
}
