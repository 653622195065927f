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

// Package unpack implements the reader pipeline: it loads an archive's
// header, corrects chunk lengths, and extracts every file's chunks in
// parallel into an output directory.
package unpack

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/alitto/pond"

	"github.com/zaparoo-labs/dzarchive/codec"
	"github.com/zaparoo-labs/dzarchive/dzerr"
	"github.com/zaparoo-labs/dzarchive/format"
	"github.com/zaparoo-labs/dzarchive/pathutil"
	"github.com/zaparoo-labs/dzarchive/sizefix"
	"github.com/zaparoo-labs/dzarchive/volume"
)

// Options configures an Extract run.
type Options struct {
	// KeepRaw copies a chunk's raw compressed bytes through when its
	// flags select a codec this implementation cannot decode. Without
	// it, such a chunk is logged, skipped and recorded in
	// Report.ChunksSkipped, and the rest of the file is still written.
	KeepRaw bool
	Workers int
	Logger  *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}

// SkippedChunk records a chunk that could not be decoded and was
// skipped rather than aborting the whole file.
type SkippedChunk struct {
	File    string
	ChunkID uint16
	Reason  error
}

// Report summarizes the outcome of an Extract run.
type Report struct {
	FilesWritten  int
	ChunksSkipped []SkippedChunk
}

// Extract loads the header from archivePath, corrects chunk lengths
// against neighbouring offsets, and writes every user file's contents
// into outDir, preserving the archive's directory structure.
func Extract(archivePath, outDir string, opts Options) (*Report, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", dzerr.ErrIO, archivePath, err)
	}
	defer f.Close()

	header, err := format.ReadHeader(f)
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	mgr := volume.NewManager(archivePath, header.Volumes)
	defer mgr.Close()

	chunks, err := sizefix.Correct(header.Chunks, mgr.Size)
	if err != nil {
		return nil, fmt.Errorf("correct chunk sizes: %w", err)
	}
	header.Chunks = chunks

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir %s: %w", dzerr.ErrIO, outDir, err)
	}

	report := &Report{}
	var mu sync.Mutex
	var firstErr error

	pool := pond.New(opts.workers(), len(header.Files))

	for i := range header.Files {
		fileIndex, entry := i, header.Files[i]
		pool.Submit(func() {
			// Each worker owns a private volume.Manager so its seek
			// positions never race with another worker's.
			workerMgr := volume.NewManager(archivePath, header.Volumes)
			defer workerMgr.Close()

			name, skipped, err := extractFile(header, fileIndex, entry, workerMgr, outDir, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("extract %s: %w", name, err)
				}
				return
			}
			report.FilesWritten++
			report.ChunksSkipped = append(report.ChunksSkipped, skipped...)
		})
	}

	pool.StopAndWait()

	if firstErr != nil {
		return report, firstErr
	}
	return report, nil
}

func extractFile(h *format.Header, fileIndex int, entry format.FileMapEntry, mgr *volume.Manager, outDir string, opts Options) (string, []SkippedChunk, error) {
	name := h.FileName(fileIndex)

	dirPart := h.DirString(entry.DirID)
	archivePath := name
	if dirPart != "" {
		archivePath = dirPart + "\\" + name
	}

	relPath, err := pathutil.FromArchive(archivePath)
	if err != nil {
		return name, nil, err
	}
	dstPath := filepath.Join(outDir, relPath)

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return name, nil, fmt.Errorf("%w: mkdir %s: %w", dzerr.ErrIO, filepath.Dir(dstPath), err)
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return name, nil, fmt.Errorf("%w: create %s: %w", dzerr.ErrIO, dstPath, err)
	}
	defer out.Close()

	reg := codec.NewRegistry()
	var skipped []SkippedChunk

	for _, chunkID := range entry.ChunkIDs {
		if int(chunkID) >= len(h.Chunks) {
			return name, skipped, fmt.Errorf("%w: chunk id %d out of range", dzerr.ErrInvalidInput, chunkID)
		}
		chunk := h.Chunks[chunkID]

		if !reg.Decodable(chunk.Flags) && !opts.KeepRaw {
			opts.logger().Warn("skipping chunk with unsupported compression",
				"file", name, "chunk", chunkID, "flags", uint16(chunk.Flags))
			skipped = append(skipped, SkippedChunk{
				File:    name,
				ChunkID: chunkID,
				Reason:  &dzerr.UnsupportedCompressionError{Flags: uint16(chunk.Flags)},
			})
			continue
		}

		vol, err := mgr.Open(chunk.File)
		if err != nil {
			return name, skipped, err
		}
		section := io.NewSectionReader(vol, int64(chunk.Offset), int64(chunk.CompressedLength))

		if !reg.Decodable(chunk.Flags) {
			// KeepRaw: copy the raw compressed bytes through untouched.
			if _, err := io.Copy(out, section); err != nil {
				return name, skipped, fmt.Errorf("%w: copy raw chunk %d: %w", dzerr.ErrIO, chunkID, err)
			}
			continue
		}

		if err := reg.Decompress(out, section, chunk.Flags, chunk.DecompressedLength); err != nil {
			return name, skipped, fmt.Errorf("%w: decompress chunk %d: %w", dzerr.ErrDecompression, chunkID, err)
		}
	}

	return name, skipped, nil
}
