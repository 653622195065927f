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

package descriptor

import (
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	d := &Descriptor{
		BaseDir: "roms",
		Volumes: []string{"game.dz", "game.002"},
		Files: []FileEntry{
			{Path: "readme.txt", ArchiveFileIndex: 0, Compression: "COPY"},
			{Path: "game.rom", ArchiveFileIndex: 1, Compression: "ZLIB", Modifiers: "region=us"},
		},
	}

	path := filepath.Join(t.TempDir(), "repack.toml")
	if err := d.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.BaseDir != d.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, d.BaseDir)
	}
	if len(got.Files) != len(d.Files) {
		t.Fatalf("len(Files) = %d, want %d", len(got.Files), len(d.Files))
	}
	if got.Files[1].Modifiers != "region=us" {
		t.Errorf("Files[1].Modifiers = %q, want %q", got.Files[1].Modifiers, "region=us")
	}
	if got.Files[0].Modifiers != "" {
		t.Errorf("Files[0].Modifiers = %q, want empty (omitempty)", got.Files[0].Modifiers)
	}
}
