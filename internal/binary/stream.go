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

// Package binary provides little-endian primitives for reading and
// writing the fixed-width, null-terminated records used by archive
// header formats.
package binary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// ReadUint8 reads a single byte from r.
func ReadUint8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint8: %w", err)
	}
	return buf[0], nil
}

// ReadUint16LE reads a little-endian uint16 from r.
func ReadUint16LE(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint16: %w", err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadUint32LE reads a little-endian uint32 from r.
func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, fmt.Errorf("read uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadCString reads bytes from r up to and including the next null
// byte and returns the string with the terminator stripped. Non-UTF8
// sequences are coerced with strings.ToValidUTF8 rather than rejected,
// since archive string tables are free-form byte sequences in
// practice.
func ReadCString(r *bufio.Reader) (string, error) {
	raw, err := r.ReadBytes(0)
	if err != nil {
		return "", fmt.Errorf("read c-string: %w", err)
	}
	s := string(raw[:len(raw)-1])
	return strings.ToValidUTF8(s, ""), nil
}

// WriteUint8 writes a single byte to w.
func WriteUint8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	if err != nil {
		return fmt.Errorf("write uint8: %w", err)
	}
	return nil
}

// WriteUint16LE writes a little-endian uint16 to w.
func WriteUint16LE(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write uint16: %w", err)
	}
	return nil
}

// WriteUint32LE writes a little-endian uint32 to w.
func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("write uint32: %w", err)
	}
	return nil
}

// WriteCString writes s to w followed by a null terminator.
func WriteCString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write c-string: %w", err)
	}
	return WriteUint8(w, 0)
}
