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

package pathutil

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/zaparoo-labs/dzarchive/dzerr"
)

func TestToArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, in, want string
	}{
		{"already backslashed", `games\snes\foo.sfc`, `games\snes\foo.sfc`},
		{"forward slashes", "games/snes/foo.sfc", `games\snes\foo.sfc`},
		{"no separators", "foo.sfc", "foo.sfc"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ToArchive(tc.in); got != tc.want {
				t.Errorf("ToArchive(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromArchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"mixed separators", `games\snes/foo.sfc`, filepath.Join("games", "snes", "foo.sfc"), false},
		{"leading slash", "/games/foo.sfc", filepath.Join("games", "foo.sfc"), false},
		{"dot components", `.\games\.\foo.sfc`, filepath.Join("games", "foo.sfc"), false},
		{"empty collapses to dot", `.\.\`, ".", false},
		{"empty string collapses to dot", "", ".", false},
		{"traversal rejected", `..\etc\passwd`, "", true},
		{"nested traversal rejected", `games\..\..\etc\passwd`, "", true},
		{"drive prefix rejected", `C:\Windows\foo`, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := FromArchive(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("FromArchive(%q) = %q, want error", tc.in, got)
				}
				if !errors.Is(err, dzerr.ErrInvalidInput) {
					t.Errorf("error %v does not wrap dzerr.ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromArchive(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("FromArchive(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFromArchiveNeverEscapesBase(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`..\..\..\etc\passwd`,
		`a\..\..\b`,
		`\..\x`,
	}
	for _, in := range inputs {
		if _, err := FromArchive(in); err == nil {
			t.Errorf("FromArchive(%q) should have been rejected as a traversal", in)
		}
	}
}
