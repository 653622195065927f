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

// Package descriptor reads and writes the TOML repack descriptor that
// drives the writer pipeline and that the reader pipeline regenerates
// on extraction. Its exact shape is an external collaborator to the
// core archive format, not part of the wire contract.
package descriptor

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/zaparoo-labs/dzarchive/format"
)

// FileEntry describes one source file's placement and compression in
// the archive being built (or that was just extracted).
type FileEntry struct {
	Path             string `toml:"path"`
	ArchiveFileIndex uint16 `toml:"archive_file_index"`
	Compression      string `toml:"compression"`
	Modifiers        string `toml:"modifiers,omitempty"`
}

// Descriptor is the round-trippable repack configuration: where source
// files live on disk, which volumes the archive spans, and how each
// file should be (or was) compressed.
type Descriptor struct {
	BaseDir       string                `toml:"base_dir"`
	Volumes       []string              `toml:"volumes"`
	RangeSettings *format.RangeSettings `toml:"range_settings,omitempty"`
	Files         []FileEntry           `toml:"files"`
}

// Load parses a Descriptor from the TOML document at path.
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read descriptor %s: %w", path, err)
	}
	var d Descriptor
	if err := toml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", path, err)
	}
	return &d, nil
}

// Save writes d to path as a TOML document.
func (d *Descriptor) Save(path string) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write descriptor %s: %w", path, err)
	}
	return nil
}
