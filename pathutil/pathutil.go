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

// Package pathutil converts between the archive's backslash-separated
// path convention and safe host-filesystem paths.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zaparoo-labs/dzarchive/dzerr"
)

// ToArchive converts a host-style path to the archive's backslash
// convention.
func ToArchive(path string) string {
	return strings.ReplaceAll(path, "/", "\\")
}

// FromArchive converts an archive-format path string to a safe,
// relative host path. It rejects ".." components (Zip Slip
// prevention) and any component containing ':' (drive-letter or
// stream-qualifier prefixes). An empty result resolves to ".".
func FromArchive(s string) (string, error) {
	normalized := strings.ReplaceAll(s, "\\", "/")
	parts := strings.Split(normalized, "/")
	return Sanitize(parts)
}

// Sanitize applies the same safety rules as FromArchive to an
// already-split sequence of path components.
func Sanitize(parts []string) (string, error) {
	var kept []string
	for _, p := range parts {
		switch {
		case p == "" || p == ".":
			continue
		case p == "..":
			return "", fmt.Errorf("%w: path component '..' is not allowed (zip slip)", dzerr.ErrInvalidInput)
		case strings.Contains(p, ":"):
			return "", fmt.Errorf("%w: path component %q has an invalid prefix", dzerr.ErrInvalidInput, p)
		default:
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return ".", nil
	}
	return filepath.Join(kept...), nil
}
