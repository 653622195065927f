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

package codec

import "io"

// zeroCodec implements the ZERO flag: the chunk carries no payload
// bytes at all, and decompression simply fills decompLen zero bytes.
type zeroCodec struct{}

func (zeroCodec) Decompress(dst io.Writer, _ io.Reader, decompLen uint32) error {
	_, err := io.CopyN(dst, zeroReader{}, int64(decompLen))
	return err
}

// Compress discards the input entirely — a ZERO chunk carries nothing
// on disk, so the caller is responsible for having verified the source
// really is all zero bytes before selecting this codec.
func (zeroCodec) Compress(_ io.Writer, _ io.Reader) error {
	return nil
}

// zeroReader is an infinite source of zero bytes.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
