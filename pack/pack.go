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

// Package pack implements the writer pipeline: it reads source files,
// compresses them in parallel, and streams the result into one or
// more archive volumes with a header patched in once final offsets
// are known.
package pack

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alitto/pond"

	"github.com/zaparoo-labs/dzarchive/codec"
	"github.com/zaparoo-labs/dzarchive/dzerr"
	"github.com/zaparoo-labs/dzarchive/format"
	"github.com/zaparoo-labs/dzarchive/pathutil"
)

// CompressionMethod selects which codec a file's chunk is compressed
// with.
type CompressionMethod uint8

const (
	Copy CompressionMethod = iota
	Zero
	Zlib
	Bzip
	Lzma
	Dz
)

func (m CompressionMethod) flag() codec.Flags {
	switch m {
	case Zero:
		return codec.FlagZero
	case Zlib:
		return codec.FlagZlib
	case Bzip:
		return codec.FlagBzip
	case Lzma:
		return codec.FlagLZMA
	case Dz:
		return codec.FlagDZRange
	case Copy:
		return 0
	default:
		return 0
	}
}

// FileSpec describes one source file to place into the archive.
// SourcePath is resolved against Options.BaseDir; the archive-internal
// path is derived from SourcePath itself (its basename becomes the
// file name, its parent directory becomes the archive directory).
type FileSpec struct {
	SourcePath  string
	VolumeIndex uint16
	Compression CompressionMethod
}

// Options configures a Pack run.
type Options struct {
	// BaseDir is prepended to each FileSpec.SourcePath when reading
	// source data.
	BaseDir string
	// VolumeNames lists auxiliary volume filenames in index order
	// (index 0 is always mainPath and is not repeated here).
	VolumeNames []string
	Workers     int
	Logger      *slog.Logger
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

type compressedFile struct {
	volumeIndex uint16
	data        []byte
	originalLen int
	flags       codec.Flags
}

// Pack builds a complete archive at mainPath (plus any auxiliary
// volumes named in opts.VolumeNames) from files, in the order given.
func Pack(mainPath string, files []FileSpec, opts Options) (*format.Header, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files to pack", dzerr.ErrInvalidInput)
	}

	fileNames := make([]string, len(files))
	fileDirIDs := make([]uint16, len(files))
	var directories []string
	dirIndex := make(map[string]uint16) // archive-format dir path -> 1-based id

	for i, fs := range files {
		fileNames[i] = filepath.Base(fs.SourcePath)
		parent := filepath.Dir(fs.SourcePath)
		parentArchive := pathutil.ToArchive(parent)
		if parentArchive == "" || parentArchive == "." {
			fileDirIDs[i] = 0
			continue
		}
		id, ok := dirIndex[parentArchive]
		if !ok {
			directories = append(directories, parentArchive)
			id = uint16(len(directories))
			dirIndex[parentArchive] = id
		}
		fileDirIDs[i] = id
	}

	allStrings := make([]string, 0, len(fileNames)+len(directories))
	allStrings = append(allStrings, fileNames...)
	allStrings = append(allStrings, directories...)

	numArchiveFiles := uint16(len(opts.VolumeNames) + 1)

	header := &format.Header{
		Settings: format.ArchiveSettings{
			NumUserFiles:   uint16(len(files)),
			NumDirectories: uint16(len(directories) + 1),
			Version:        0,
		},
		Strings:       allStrings,
		ChunkSettings: format.ChunkSettings{NumArchiveFiles: numArchiveFiles, NumChunks: uint16(len(files))},
		Volumes:       opts.VolumeNames,
	}
	header.Files = make([]format.FileMapEntry, len(files))
	for i := range files {
		header.Files[i] = format.FileMapEntry{DirID: fileDirIDs[i], ChunkIDs: []uint16{uint16(i)}}
	}

	outDir := filepath.Dir(mainPath)

	mainFile, err := os.Create(mainPath)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", mainPath, err)
	}
	defer mainFile.Close()
	volumeFiles := map[uint16]*os.File{0: mainFile}
	for i, name := range opts.VolumeNames {
		p := filepath.Join(outDir, name)
		f, err := os.Create(p)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p, err)
		}
		defer f.Close()
		volumeFiles[uint16(i+1)] = f
	}

	// The range-settings block must be part of the reservation, so it
	// is decided from the requested methods before any payload is written.
	for _, fs := range files {
		if fs.Compression.flag().Has(codec.FlagDZRange) {
			header.Range = &format.RangeSettings{}
			break
		}
	}

	headerSize := format.HeaderSize(header)
	if _, err := mainFile.Seek(headerSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek past header: %w", err)
	}

	compressed, err := compressAll(files, opts)
	if err != nil {
		return nil, err
	}

	chunks := make([]format.Chunk, len(compressed))
	for i, cf := range compressed {
		w, ok := volumeFiles[cf.volumeIndex]
		if !ok {
			return nil, fmt.Errorf("archive volume %d not found in options", cf.volumeIndex)
		}
		offset, err := w.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, fmt.Errorf("stream position: %w", err)
		}
		if _, err := w.Write(cf.data); err != nil {
			return nil, fmt.Errorf("write chunk %d: %w", i, err)
		}
		chunks[i] = format.Chunk{
			Offset:             uint32(offset),
			CompressedLength:   uint32(len(cf.data)),
			DecompressedLength: uint32(cf.originalLen),
			Flags:              cf.flags,
			File:               cf.volumeIndex,
		}
	}
	header.Chunks = chunks

	if _, err := mainFile.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to header: %w", err)
	}
	if err := format.WriteHeader(mainFile, header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	opts.logger().Info("pack complete", "files", len(files), "chunks", len(chunks))
	return header, nil
}

// compressAll runs the parallel compress phase and returns results in
// the same order as files, so the sequential write phase below can
// assign deterministic offsets and chunk ids.
func compressAll(files []FileSpec, opts Options) ([]compressedFile, error) {
	pool := pond.New(opts.workers(), len(files))

	results := make([]compressedFile, len(files))
	errs := make([]error, len(files))
	reg := codec.NewRegistry()

	for i, fs := range files {
		i, fs := i, fs
		pool.Submit(func() {
			full := filepath.Join(opts.BaseDir, fs.SourcePath)
			raw, err := os.ReadFile(full)
			if err != nil {
				errs[i] = fmt.Errorf("%w: read %s: %w", dzerr.ErrIO, full, err)
				return
			}
			var out bytes.Buffer
			flags := fs.Compression.flag()
			if err := reg.Compress(&out, bytes.NewReader(raw), flags); err != nil {
				errs[i] = fmt.Errorf("%w: compress %s: %w", dzerr.ErrCompression, full, err)
				return
			}
			results[i] = compressedFile{
				volumeIndex: fs.VolumeIndex,
				data:        out.Bytes(),
				originalLen: len(raw),
				flags:       flags,
			}
		})
	}

	pool.StopAndWait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
