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

package pack

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zaparoo-labs/dzarchive/format"
)

func TestPackProducesValidHeader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "readme.txt"), []byte("hello archive"))
	mustWrite(t, filepath.Join(dir, "roms", "game.rom"), []byte("rom payload data here"))

	files := []FileSpec{
		{SourcePath: "readme.txt", Compression: Copy},
		{SourcePath: filepath.Join("roms", "game.rom"), Compression: Zlib},
	}

	archivePath := filepath.Join(dir, "out.dz")
	h, err := Pack(archivePath, files, Options{BaseDir: dir, Workers: 2})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	if h.Settings.NumUserFiles != 2 {
		t.Errorf("NumUserFiles = %d, want 2", h.Settings.NumUserFiles)
	}
	if len(h.Chunks) != 2 {
		t.Fatalf("len(Chunks) = %d, want 2", len(h.Chunks))
	}

	f, err := os.Open(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()
	got, err := format.ReadHeader(f)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if got.Settings.NumUserFiles != 2 {
		t.Errorf("re-read NumUserFiles = %d, want 2", got.Settings.NumUserFiles)
	}
	if got.DirString(h.Files[1].DirID) != `roms` {
		t.Errorf("dir string = %q, want roms", got.DirString(h.Files[1].DirID))
	}
}

// TestPackReservesFullChunkTable guards against under-reserving header
// space for the chunk table: if the reservation is computed before the
// chunk count is known, the first chunk's bytes land where WriteHeader
// later writes the chunk table, corrupting the archive.
func TestPackReservesFullChunkTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	want := []byte("hello archive")
	mustWrite(t, filepath.Join(dir, "readme.txt"), want)

	files := []FileSpec{
		{SourcePath: "readme.txt", Compression: Copy},
	}

	archivePath := filepath.Join(dir, "out.dz")
	h, err := Pack(archivePath, files, Options{BaseDir: dir, Workers: 1})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if len(h.Chunks) != 1 {
		t.Fatalf("len(Chunks) = %d, want 1", len(h.Chunks))
	}

	headerSize := format.HeaderSize(h)
	if int64(h.Chunks[0].Offset) < headerSize {
		t.Fatalf("chunk offset %d overlaps reserved header region (%d bytes)", h.Chunks[0].Offset, headerSize)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	got := make([]byte, h.Chunks[0].CompressedLength)
	if _, err := f.ReadAt(got, int64(h.Chunks[0].Offset)); err != nil {
		t.Fatalf("read chunk data: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("chunk data = %q, want %q", got, want)
	}
}

func mustWrite(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
