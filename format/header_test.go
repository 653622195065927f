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
	"bytes"
	"errors"
	"testing"

	"github.com/zaparoo-labs/dzarchive/codec"
	"github.com/zaparoo-labs/dzarchive/dzerr"
)

func sampleHeader() *Header {
	return &Header{
		Settings: ArchiveSettings{NumUserFiles: 2, NumDirectories: 2, Version: 0},
		Strings:  []string{"readme.txt", "game.rom", "roms"},
		Files: []FileMapEntry{
			{DirID: 0, ChunkIDs: []uint16{0}},
			{DirID: 1, ChunkIDs: []uint16{1}},
		},
		ChunkSettings: ChunkSettings{NumArchiveFiles: 1, NumChunks: 2},
		Chunks: []Chunk{
			{Offset: 0, CompressedLength: 10, DecompressedLength: 10, Flags: 0, File: 0},
			{Offset: 10, CompressedLength: 20, DecompressedLength: 40, Flags: codec.FlagZlib, File: 0},
		},
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	h := sampleHeader()
	var buf bytes.Buffer
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}

	if int64(buf.Len()) != HeaderSize(h) {
		t.Fatalf("HeaderSize() = %d, written %d bytes", HeaderSize(h), buf.Len())
	}

	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	if got.Settings != h.Settings {
		t.Errorf("settings = %+v, want %+v", got.Settings, h.Settings)
	}
	if len(got.Strings) != len(h.Strings) {
		t.Fatalf("strings len = %d, want %d", len(got.Strings), len(h.Strings))
	}
	for i := range h.Strings {
		if got.Strings[i] != h.Strings[i] {
			t.Errorf("strings[%d] = %q, want %q", i, got.Strings[i], h.Strings[i])
		}
	}
	if len(got.Chunks) != len(h.Chunks) {
		t.Fatalf("chunks len = %d, want %d", len(got.Chunks), len(h.Chunks))
	}
	for i := range h.Chunks {
		if got.Chunks[i] != h.Chunks[i] {
			t.Errorf("chunks[%d] = %+v, want %+v", i, got.Chunks[i], h.Chunks[i])
		}
	}
}

func TestReadHeaderInvalidMagic(t *testing.T) {
	t.Parallel()

	buf := bytes.NewBuffer([]byte{0x00, 0x00, 0x00, 0x00})
	_, err := ReadHeader(buf)
	if err == nil {
		t.Fatal("expected an error for invalid magic")
	}
	var magicErr *dzerr.MagicError
	if !errors.As(err, &magicErr) {
		t.Errorf("error %v is not a *dzerr.MagicError", err)
	}
}

func TestDirString(t *testing.T) {
	t.Parallel()

	h := sampleHeader()
	if got := h.DirString(0); got != "" {
		t.Errorf("DirString(0) = %q, want empty root", got)
	}
	if got := h.DirString(1); got != "roms" {
		t.Errorf("DirString(1) = %q, want %q", got, "roms")
	}
}

func TestHeaderRoundTripWithVolumesAndRange(t *testing.T) {
	t.Parallel()

	h := sampleHeader()
	h.ChunkSettings.NumArchiveFiles = 2
	h.Volumes = []string{"archive.002"}
	h.Chunks[1].Flags = codec.FlagDZRange
	h.Range = &RangeSettings{}

	var buf bytes.Buffer
	if err := WriteHeader(&buf, h); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if len(got.Volumes) != 1 || got.Volumes[0] != "archive.002" {
		t.Errorf("volumes = %v, want [archive.002]", got.Volumes)
	}
	if got.Range == nil {
		t.Fatal("expected range settings to be present")
	}
}
