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

// Package sizefix recomputes each chunk's compressed length from its
// neighbours' offsets, correcting for headers that record a stale or
// approximate value.
package sizefix

import (
	"fmt"
	"sort"

	"github.com/zaparoo-labs/dzarchive/format"
)

// VolumeSizer returns the total byte length of the volume identified
// by file index.
type VolumeSizer func(file uint16) (int64, error)

// Correct returns a copy of chunks with CompressedLength recomputed
// from the gap to the next chunk's offset within the same volume (or
// to the volume's total size, for the last chunk in that volume).
// Chunks sharing an offset keep their input order. When the computed
// gap is zero or negative — the next boundary is not actually after
// this chunk's offset — the header's recorded length is kept instead.
func Correct(chunks []format.Chunk, volumeSize VolumeSizer) ([]format.Chunk, error) {
	out := make([]format.Chunk, len(chunks))
	copy(out, chunks)

	byVolume := make(map[uint16][]int)
	for i, c := range chunks {
		byVolume[c.File] = append(byVolume[c.File], i)
	}

	for file, indices := range byVolume {
		sort.SliceStable(indices, func(a, b int) bool {
			return chunks[indices[a]].Offset < chunks[indices[b]].Offset
		})

		volLen, err := volumeSize(file)
		if err != nil {
			return nil, fmt.Errorf("volume %d size: %w", file, err)
		}

		for k, idx := range indices {
			current := chunks[idx].Offset
			var next int64
			if k+1 < len(indices) {
				next = int64(chunks[indices[k+1]].Offset)
			} else {
				next = volLen
			}

			gap := next - int64(current)
			if gap <= 0 {
				continue // keep the header's recorded CompressedLength
			}
			out[idx].CompressedLength = uint32(gap)
		}
	}

	return out, nil
}
