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

import (
	"compress/bzip2"
	"fmt"
	"io"

	dsbzip2 "github.com/dsnet/compress/bzip2"
)

// bzipCodec implements the BZIP flag. The standard library only ships
// a bzip2 reader, so encoding goes through dsnet/compress/bzip2
// instead — the pairing nabbar-golib's archive/compress package uses
// for the same reason.
type bzipCodec struct{}

func (bzipCodec) Decompress(dst io.Writer, src io.Reader, _ uint32) error {
	r := bzip2.NewReader(src)
	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("bzip2 read: %w", err)
	}
	return nil
}

func (bzipCodec) Compress(dst io.Writer, src io.Reader) error {
	w, err := dsbzip2.NewWriter(dst, nil)
	if err != nil {
		return fmt.Errorf("bzip2 init: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("bzip2 write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("bzip2 finish: %w", err)
	}
	return nil
}
