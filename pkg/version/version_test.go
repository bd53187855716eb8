// Copyright (c) 2025, Hostfacts Authors.  All rights reserved.
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
		name    string
		input   string
		want    Version
		wantErr error
	}{
		{
			name:  "kernel release with vendor suffix",
			input: "6.8.0-51-generic",
			want:  Version{Major: 6, Minor: 8, Patch: 0, Precision: 3, Extras: "-51-generic"},
		},
		{
			name:  "arch kernel release",
			input: "6.12.4-arch1-1",
			want:  Version{Major: 6, Minor: 12, Patch: 4, Precision: 3, Extras: "-arch1-1"},
		},
		{
			name:  "systemd version",
			input: "255",
			want:  Version{Major: 255, Precision: 1},
		},
		{
			name:  "distribution release",
			input: "24.04",
			want:  Version{Major: 24, Minor: 4, Precision: 2},
		},
		{
			name:  "v prefix stripped",
			input: "v1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3, Precision: 3},
		},
		{
			name:  "build metadata",
			input: "1.2.3+build99",
			want:  Version{Major: 1, Minor: 2, Patch: 3, Precision: 3, Extras: "+build99"},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrEmptyVersion,
		},
		{
			name:    "too many components",
			input:   "1.2.3.4",
			wantErr: ErrTooManyComponents,
		},
		{
			name:    "non-numeric",
			input:   "abc",
			wantErr: ErrNonNumeric,
		},
		{
			name:    "negative component",
			input:   "-1",
			wantErr: ErrNonNumeric,
		},
		{
			name:    "trailing dot",
			input:   "6.8.",
			wantErr: ErrNonNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		v    Version
		want string
	}{
		{Version{Major: 255, Precision: 1}, "255"},
		{Version{Major: 24, Minor: 4, Precision: 2}, "24.4"},
		{Version{Major: 6, Minor: 8, Patch: 0, Precision: 3, Extras: "-51-generic"}, "6.8.0"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsVersionShaped(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"6.8.0-51-generic", true},
		{"255", true},
		{"24.04", true},
		{"", false},
		{"not a version", false},
		{"command not found", false},
	}

	for _, tt := range tests {
		if got := IsVersionShaped(tt.input); got != tt.want {
			t.Errorf("IsVersionShaped(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
