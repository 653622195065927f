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

// Package dzerr defines the error taxonomy shared across the archive
// packages.
package dzerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks against error kinds that carry
// no payload of their own.
var (
	// ErrIO wraps an underlying I/O failure.
	ErrIO = errors.New("i/o error")

	// ErrCompression indicates a compressor failed.
	ErrCompression = errors.New("compression failed")

	// ErrDecompression indicates a decompressor failed.
	ErrDecompression = errors.New("decompression failed")

	// ErrInvalidInput indicates malformed or unsafe caller input, such
	// as a path traversal attempt or an empty volume list.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGeneric is used for failures that don't fit another kind.
	ErrGeneric = errors.New("archive error")
)

// MagicError reports a header whose magic value did not match the
// expected archive signature.
type MagicError struct {
	Got uint32
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic: got 0x%08X, want 0x5A525444", e.Got)
}

// UnsupportedCompressionError reports a chunk whose flag bits select a
// codec this implementation does not decode (MP3, JPEG, COMBUF-only,
// or RANDOMACCESS-only payloads).
type UnsupportedCompressionError struct {
	Flags uint16
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported compression flags: 0x%04X", e.Flags)
}
