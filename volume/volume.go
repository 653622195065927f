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

// Package volume resolves and opens the volume files that make up a
// (possibly multi-volume) archive.
package volume

import (
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/zaparoo-labs/dzarchive/dzerr"
)

// Manager resolves volume indices to filesystem paths relative to the
// main archive file, and opens them on demand. A Manager is not safe
// for concurrent use — each goroutine in the reader pipeline creates
// its own Manager (and therefore its own handle cache and
// independent seek positions) over the same set of paths.
type Manager struct {
	mainPath string
	names    []string // names[i] is the filename for volume index i+1
	cache    *lru.Cache[uint16, *os.File]
}

// defaultCacheSize bounds how many volume handles (volume 0 included)
// a single Manager keeps open at once.
const defaultCacheSize = 8

// NewManager creates a Manager for an archive whose main volume lives
// at mainPath. names holds the auxiliary volume filenames in index
// order (names[0] is volume index 1, and so on), resolved relative to
// mainPath's directory.
func NewManager(mainPath string, names []string) *Manager {
	cache, _ := lru.NewWithEvict(defaultCacheSize, func(_ uint16, f *os.File) {
		_ = f.Close()
	})
	return &Manager{mainPath: mainPath, names: names, cache: cache}
}

// path resolves a volume index to its on-disk path.
func (m *Manager) path(index uint16) (string, error) {
	if index == 0 {
		return m.mainPath, nil
	}
	i := int(index) - 1
	if i < 0 || i >= len(m.names) {
		return "", fmt.Errorf("%w: unknown volume index %d", dzerr.ErrInvalidInput, index)
	}
	return filepath.Join(filepath.Dir(m.mainPath), m.names[i]), nil
}

// Open returns a handle to the volume at index, reusing a cached
// handle when available.
func (m *Manager) Open(index uint16) (*os.File, error) {
	if f, ok := m.cache.Get(index); ok {
		return f, nil
	}
	p, err := m.path(index)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("%w: open volume %d (%s): %w", dzerr.ErrIO, index, p, err)
	}
	m.cache.Add(index, f)
	return f, nil
}

// Size returns the byte length of the volume at index.
func (m *Manager) Size(index uint16) (int64, error) {
	f, err := m.Open(index)
	if err != nil {
		return 0, err
	}
	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: stat volume %d: %w", dzerr.ErrIO, index, err)
	}
	return info.Size(), nil
}

// Close releases every cached volume handle.
func (m *Manager) Close() error {
	var firstErr error
	for _, key := range m.cache.Keys() {
		if f, ok := m.cache.Peek(key); ok {
			if err := f.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	m.cache.Purge()
	return firstErr
}
