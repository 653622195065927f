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

	"github.com/klauspost/compress/flate"
)

// zlibCodec implements the ZLIB flag using raw DEFLATE framing (no
// zlib wrapper).
type zlibCodec struct{}

func (zlibCodec) Decompress(dst io.Writer, src io.Reader, _ uint32) error {
	r := flate.NewReader(src)
	defer r.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("deflate read: %w", err)
	}
	return nil
}

func (zlibCodec) Compress(dst io.Writer, src io.Reader) error {
	w, err := flate.NewWriter(dst, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("deflate init: %w", err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("deflate write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("deflate finish: %w", err)
	}
	return nil
}
