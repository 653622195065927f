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

package format

import (
	"bufio"
	"fmt"
	"io"

	"github.com/zaparoo-labs/dzarchive/codec"
	"github.com/zaparoo-labs/dzarchive/dzerr"
	bin "github.com/zaparoo-labs/dzarchive/internal/binary"
)

// ReadHeader parses a complete archive header from r in strict wire
// order: archive settings, string table, file-to-chunk map, chunk
// settings, chunk table, volume list (multi-volume archives only),
// range settings (only if any chunk carries FlagDZRange).
func ReadHeader(r io.Reader) (*Header, error) {
	br := bufio.NewReader(r)

	magic, err := bin.ReadUint32LE(br)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != Magic {
		return nil, &dzerr.MagicError{Got: magic}
	}

	h := &Header{}
	h.Settings.NumUserFiles, err = bin.ReadUint16LE(br)
	if err != nil {
		return nil, fmt.Errorf("read num_user_files: %w", err)
	}
	h.Settings.NumDirectories, err = bin.ReadUint16LE(br)
	if err != nil {
		return nil, fmt.Errorf("read num_directories: %w", err)
	}
	versionByte, err := bin.ReadUint8(br)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	h.Settings.Version = versionByte

	numStrings := int(h.Settings.NumUserFiles) + int(h.Settings.NumDirectories) - 1
	if numStrings < 0 {
		return nil, fmt.Errorf("%w: negative string table size", dzerr.ErrInvalidInput)
	}
	h.Strings = make([]string, numStrings)
	for i := range h.Strings {
		s, err := bin.ReadCString(br)
		if err != nil {
			return nil, fmt.Errorf("read string %d: %w", i, err)
		}
		h.Strings[i] = s
	}

	h.Files = make([]FileMapEntry, h.Settings.NumUserFiles)
	for i := range h.Files {
		dirID, err := bin.ReadUint16LE(br)
		if err != nil {
			return nil, fmt.Errorf("read file %d dir id: %w", i, err)
		}
		var chunkIDs []uint16
		for {
			id, err := bin.ReadUint16LE(br)
			if err != nil {
				return nil, fmt.Errorf("read file %d chunk id: %w", i, err)
			}
			if id == chunkListTerminator {
				break
			}
			chunkIDs = append(chunkIDs, id)
		}
		h.Files[i] = FileMapEntry{DirID: dirID, ChunkIDs: chunkIDs}
	}

	h.ChunkSettings.NumArchiveFiles, err = bin.ReadUint16LE(br)
	if err != nil {
		return nil, fmt.Errorf("read num_archive_files: %w", err)
	}
	h.ChunkSettings.NumChunks, err = bin.ReadUint16LE(br)
	if err != nil {
		return nil, fmt.Errorf("read num_chunks: %w", err)
	}

	hasDZRange := false
	h.Chunks = make([]Chunk, h.ChunkSettings.NumChunks)
	for i := range h.Chunks {
		c, err := readChunk(br)
		if err != nil {
			return nil, fmt.Errorf("read chunk %d: %w", i, err)
		}
		if c.Flags.Has(codec.FlagDZRange) {
			hasDZRange = true
		}
		h.Chunks[i] = c
	}

	if h.ChunkSettings.NumArchiveFiles > 1 {
		h.Volumes = make([]string, h.ChunkSettings.NumArchiveFiles-1)
		for i := range h.Volumes {
			s, err := bin.ReadCString(br)
			if err != nil {
				return nil, fmt.Errorf("read volume name %d: %w", i, err)
			}
			h.Volumes[i] = s
		}
	}

	if hasDZRange {
		rs, err := readRangeSettings(br)
		if err != nil {
			return nil, fmt.Errorf("read range settings: %w", err)
		}
		h.Range = rs
	}

	return h, nil
}

func readChunk(r io.Reader) (Chunk, error) {
	offset, err := bin.ReadUint32LE(r)
	if err != nil {
		return Chunk{}, err
	}
	compLen, err := bin.ReadUint32LE(r)
	if err != nil {
		return Chunk{}, err
	}
	decompLen, err := bin.ReadUint32LE(r)
	if err != nil {
		return Chunk{}, err
	}
	flags, err := bin.ReadUint16LE(r)
	if err != nil {
		return Chunk{}, err
	}
	file, err := bin.ReadUint16LE(r)
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{
		Offset:             offset,
		CompressedLength:   compLen,
		DecompressedLength: decompLen,
		Flags:              codec.Flags(flags),
		File:               file,
	}, nil
}

func readRangeSettings(r io.Reader) (*RangeSettings, error) {
	buf := make([]byte, 10)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return &RangeSettings{
		WinSize:            buf[0],
		Flags:              buf[1],
		OffsetTableSize:    buf[2],
		OffsetTables:       buf[3],
		OffsetContexts:     buf[4],
		RefLengthTableSize: buf[5],
		RefLengthTables:    buf[6],
		RefOffsetTableSize: buf[7],
		RefOffsetTables:    buf[8],
		BigMinMatch:        buf[9],
	}, nil
}

// WriteHeader serializes h to w in the same order ReadHeader expects.
func WriteHeader(w io.Writer, h *Header) error {
	if err := bin.WriteUint32LE(w, Magic); err != nil {
		return err
	}
	if err := bin.WriteUint16LE(w, h.Settings.NumUserFiles); err != nil {
		return err
	}
	if err := bin.WriteUint16LE(w, h.Settings.NumDirectories); err != nil {
		return err
	}
	if err := bin.WriteUint8(w, h.Settings.Version); err != nil {
		return err
	}

	for _, s := range h.Strings {
		if err := bin.WriteCString(w, s); err != nil {
			return err
		}
	}

	for i, fe := range h.Files {
		if err := bin.WriteUint16LE(w, fe.DirID); err != nil {
			return err
		}
		for _, id := range fe.ChunkIDs {
			if err := bin.WriteUint16LE(w, id); err != nil {
				return err
			}
		}
		if err := bin.WriteUint16LE(w, chunkListTerminator); err != nil {
			return fmt.Errorf("write file %d terminator: %w", i, err)
		}
	}

	if err := bin.WriteUint16LE(w, h.ChunkSettings.NumArchiveFiles); err != nil {
		return err
	}
	if err := bin.WriteUint16LE(w, h.ChunkSettings.NumChunks); err != nil {
		return err
	}

	for i, c := range h.Chunks {
		if err := writeChunk(w, c); err != nil {
			return fmt.Errorf("write chunk %d: %w", i, err)
		}
	}

	for _, v := range h.Volumes {
		if err := bin.WriteCString(w, v); err != nil {
			return err
		}
	}

	if h.Range != nil {
		buf := []byte{
			h.Range.WinSize, h.Range.Flags, h.Range.OffsetTableSize,
			h.Range.OffsetTables, h.Range.OffsetContexts, h.Range.RefLengthTableSize,
			h.Range.RefLengthTables, h.Range.RefOffsetTableSize, h.Range.RefOffsetTables,
			h.Range.BigMinMatch,
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write range settings: %w", err)
		}
	}

	return nil
}

func writeChunk(w io.Writer, c Chunk) error {
	if err := bin.WriteUint32LE(w, c.Offset); err != nil {
		return err
	}
	if err := bin.WriteUint32LE(w, c.CompressedLength); err != nil {
		return err
	}
	if err := bin.WriteUint32LE(w, c.DecompressedLength); err != nil {
		return err
	}
	if err := bin.WriteUint16LE(w, uint16(c.Flags)); err != nil {
		return err
	}
	return bin.WriteUint16LE(w, c.File)
}

// HeaderSize computes the exact on-disk byte length of h's header,
// used by the writer pipeline to reserve space for the header before
// streaming chunk payloads.
func HeaderSize(h *Header) int64 {
	var size int64 = 9 // magic(4) + num_user_files(2) + num_directories(2) + version(1)

	for _, s := range h.Strings {
		size += int64(len(s)) + 1
	}

	for _, fe := range h.Files {
		size += 2 + int64(len(fe.ChunkIDs))*2 + 2
	}

	size += 4 // chunk settings
	size += int64(h.ChunkSettings.NumChunks) * 16

	for _, v := range h.Volumes {
		size += int64(len(v)) + 1
	}

	if h.Range != nil {
		size += 10
	}

	return size
}
