// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package version

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		want    Version
		wantErr error
	}{
		{in: "1", want: Version{Major: 1, Precision: 1}},
		{in: "1.7", want: Version{Major: 1, Minor: 7, Precision: 2}},
		{in: "1.7.10", want: Version{Major: 1, Minor: 7, Patch: 10, Precision: 3}},
		{in: "v1.12.2", want: Version{Major: 1, Minor: 12, Patch: 2, Precision: 3}},
		{in: "1.7.10-pre1", want: Version{Major: 1, Minor: 7, Patch: 10, Precision: 3, Extras: "-pre1"}},
		{in: "", wantErr: ErrEmptyVersion},
		{in: "1.2.3.4", wantErr: ErrTooManyComponents},
		{in: "1..2", wantErr: ErrNonNumeric},
		{in: "a.b", wantErr: ErrNonNumeric},
		{in: "1.-2", wantErr: ErrNonNumeric},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	game := MustParseVersion("1.7.10")
	tests := []struct {
		pack string
		want bool
	}{
		{"1", true},
		{"1.7", true},
		{"1.7.10", true},
		{"1.7.2", false},
		{"1.12", false},
		{"2", false},
	}
	for _, tt := range tests {
		t.Run(tt.pack, func(t *testing.T) {
			if got := MustParseVersion(tt.pack).Matches(game); got != tt.want {
				t.Errorf("%s.Matches(%s) = %v, want %v", tt.pack, game, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.7.10", "1.7.2", 1},
		{"1.7.2", "1.7.10", -1},
		{"1.7", "1.7.10", 0},
		{"1.12.2", "1.7.10", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			if got := MustParseVersion(tt.a).Compare(MustParseVersion(tt.b)); got != tt.want {
				t.Errorf("Compare = %d, want %d", got, tt.want)
			}
		})
	}
	if !MustParseVersion("1.7.10").EqualsOrNewer(MustParseVersion("1.7.10")) {
		t.Error("expected equal versions to satisfy EqualsOrNewer")
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid version")
		}
	}()
	MustParseVersion("x")
}
