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
)

// Codec compresses and decompresses chunk payloads for one flag
// combination.
type Codec interface {
	// Decompress reads a compressed stream from src and writes the
	// decompressed payload to dst. decompLen is the recorded
	// decompressed length from the chunk record.
	Decompress(dst io.Writer, src io.Reader, decompLen uint32) error
	// Compress reads a raw payload from src and writes the compressed
	// stream to dst.
	Compress(dst io.Writer, src io.Reader) error
}

type entry struct {
	mask  Flags
	name  string
	codec Codec
}

// Registry dispatches chunk (de)compression by flag bitmask, testing
// registered entries in priority order and using the first whose mask
// fully intersects the chunk's flags. Order matters — unlike a plain
// map, a Registry's entries are tried in the exact sequence they were
// registered, which is what lets multi-bit flag combinations resolve
// deterministically (e.g. a chunk with both ZERO and LZMA set is
// always treated as ZERO, because ZERO is registered first).
type Registry struct {
	entries []entry
}

// NewRegistry builds a Registry with the standard codec set
// registered in the required priority order: ZERO, DZ_RANGE
// (passthrough), LZMA, ZLIB, BZIP, COPYCOMP. Any flag combination that
// matches none of these falls through to a verbatim copy.
func NewRegistry() *Registry {
	r := &Registry{}
	r.register(FlagZero, "ZERO", &zeroCodec{})
	r.register(FlagDZRange, "DZ_RANGE", &passthroughCodec{})
	r.register(FlagLZMA, "LZMA", &lzmaCodec{})
	r.register(FlagZlib, "ZLIB", &zlibCodec{})
	r.register(FlagBzip, "BZIP", &bzipCodec{})
	r.register(FlagCopyComp, "COPY", &copyCodec{})
	return r
}

func (r *Registry) register(mask Flags, name string, c Codec) {
	r.entries = append(r.entries, entry{mask: mask, name: name, codec: c})
}

// lookup returns the first registered entry whose mask fully
// intersects flags, or nil if none match (the flags==0 / verbatim
// case, and the non-decodable MP3/JPEG/COMBUF/RANDOMACCESS-only case).
func (r *Registry) lookup(flags Flags) *entry {
	for i := range r.entries {
		if flags.Has(r.entries[i].mask) {
			return &r.entries[i]
		}
	}
	return nil
}

// Decodable reports whether flags selects a codec this registry can
// decompress, as opposed to falling through to verbatim copy because
// none of its bits are recognized (MP3, JPEG, COMBUF, RANDOMACCESS
// used alone).
func (r *Registry) Decodable(flags Flags) bool {
	return r.lookup(flags) != nil || flags == 0
}

// Decompress dispatches to the first matching codec, or copies src to
// dst verbatim when flags is 0 or matches nothing registered.
func (r *Registry) Decompress(dst io.Writer, src io.Reader, flags Flags, decompLen uint32) error {
	if e := r.lookup(flags); e != nil {
		if err := e.codec.Decompress(dst, src, decompLen); err != nil {
			return fmt.Errorf("%s decompress: %w", e.name, err)
		}
		return nil
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy decompress: %w", err)
	}
	return nil
}

// Compress dispatches to the codec selected by flags, or copies src to
// dst verbatim for flags == 0.
func (r *Registry) Compress(dst io.Writer, src io.Reader, flags Flags) error {
	if e := r.lookup(flags); e != nil {
		if err := e.codec.Compress(dst, src); err != nil {
			return fmt.Errorf("%s compress: %w", e.name, err)
		}
		return nil
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy compress: %w", err)
	}
	return nil
}

type copyCodec struct{}

func (copyCodec) Decompress(dst io.Writer, src io.Reader, _ uint32) error {
	_, err := io.Copy(dst, src)
	return err
}

func (copyCodec) Compress(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}

// passthroughCodec implements the DZ_RANGE placeholder: a true range
// decoder is not implemented, so chunks carrying only this flag are
// copied through unmodified, matching how an unsupported-but-declared
// codec degrades to raw passthrough rather than failing outright.
type passthroughCodec struct{}

func (passthroughCodec) Decompress(dst io.Writer, src io.Reader, _ uint32) error {
	_, err := io.Copy(dst, src)
	return err
}

func (passthroughCodec) Compress(dst io.Writer, src io.Reader) error {
	_, err := io.Copy(dst, src)
	return err
}
