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
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaCodec implements the LZMA flag. Unlike CHD's headerless raw
// LZMA hunks, DZ's LZMA chunks carry the standard header and end
// marker, so the stream can be fed directly to lzma.NewReader/Writer
// with no synthetic-properties workaround.
type lzmaCodec struct{}

func (lzmaCodec) Decompress(dst io.Writer, src io.Reader, _ uint32) error {
	r, err := lzma.NewReader(src)
	if err != nil {
		return fmt.Errorf("lzma init: %w", err)
	}
	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("lzma read: %w", err)
	}
	return nil
}

func (lzmaCodec) Compress(dst io.Writer, src io.Reader) error {
	w, err := lzma.NewWriter(dst)
	if err != nil {
		return fmt.Errorf("lzma init: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("lzma write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("lzma finish: %w", err)
	}
	return nil
}
