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

package binary

import (
	"bufio"
	"bytes"
	"testing"
)

func TestUint8RoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteUint8(&buf, 0x42); err != nil {
		t.Fatalf("WriteUint8: %v", err)
	}
	got, err := ReadUint8(&buf)
	if err != nil {
		t.Fatalf("ReadUint8: %v", err)
	}
	if got != 0x42 {
		t.Errorf("ReadUint8() = 0x%02X, want 0x42", got)
	}
}

func TestUint16LERoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want uint16
	}{
		{"zero", 0},
		{"small", 0x1234},
		{"max", 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteUint16LE(&buf, tt.want); err != nil {
				t.Fatalf("WriteUint16LE: %v", err)
			}
			got, err := ReadUint16LE(&buf)
			if err != nil {
				t.Fatalf("ReadUint16LE: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadUint16LE() = 0x%04X, want 0x%04X", got, tt.want)
			}
		})
	}
}

func TestUint32LERoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteUint32LE(&buf, 0x12345678); err != nil {
		t.Fatalf("WriteUint32LE: %v", err)
	}
	got, err := ReadUint32LE(&buf)
	if err != nil {
		t.Fatalf("ReadUint32LE: %v", err)
	}
	if got != 0x12345678 {
		t.Errorf("ReadUint32LE() = 0x%08X, want 0x12345678", got)
	}
}

func TestReadUint32LEShortRead(t *testing.T) {
	t.Parallel()

	if _, err := ReadUint32LE(bytes.NewReader([]byte{0x01, 0x02})); err == nil {
		t.Error("ReadUint32LE() on short input: want error, got nil")
	}
}

func TestCStringRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"empty", ""},
		{"simple", "game.rom"},
		{"with spaces", "my game file.bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WriteCString(&buf, tt.want); err != nil {
				t.Fatalf("WriteCString: %v", err)
			}
			got, err := ReadCString(bufio.NewReader(&buf))
			if err != nil {
				t.Fatalf("ReadCString: %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadCString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadCStringConsumesOnlyUpToTerminator(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(bytes.NewReader([]byte("first\x00second\x00")))

	first, err := ReadCString(r)
	if err != nil {
		t.Fatalf("ReadCString first: %v", err)
	}
	if first != "first" {
		t.Errorf("first = %q, want %q", first, "first")
	}

	second, err := ReadCString(r)
	if err != nil {
		t.Fatalf("ReadCString second: %v", err)
	}
	if second != "second" {
		t.Errorf("second = %q, want %q", second, "second")
	}
}

func TestReadCStringMissingTerminator(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(bytes.NewReader([]byte("no terminator here")))
	if _, err := ReadCString(r); err == nil {
		t.Error("ReadCString() on unterminated input: want error, got nil")
	}
}
