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

package reading

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestScalarMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		r    Reading
		want string
	}{
		{"string", Str("GNOME"), `"GNOME"`},
		{"int64", Int64(-5), `-5`},
		{"uint64", Uint64(16777216), `16777216`},
		{"float64", Float64(87.5), `87.5`},
		{"bool", Bool(true), `true`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.r)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestScalarMarshalYAML(t *testing.T) {
	// The YAML value must be the bare scalar, not a {v: ...} wrapper.
	out, err := yaml.Marshal(map[string]Reading{"total": Uint64(1024)})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(out) != "total: 1024\n" {
		t.Errorf("Marshal() = %q, want %q", out, "total: 1024\n")
	}
}

func TestScalarUnmarshalJSON(t *testing.T) {
	var s Scalar[uint64]
	if err := json.Unmarshal([]byte(`42`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if s.V != 42 {
		t.Errorf("Unmarshal() = %d, want 42", s.V)
	}
}

func TestToReading(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantValue any
	}{
		{"int", 8, 8},
		{"int64", int64(-1), int64(-1)},
		{"uint64", uint64(18446744073709551615), uint64(18446744073709551615)},
		{"float64", 3.14, 3.14},
		{"bool", true, true},
		{"string", "zsh", "zsh"},
		{"fallback to string", []int{1, 2}, "[1 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToReading(tt.value)
			if got == nil {
				t.Fatal("ToReading() returned nil")
			}
			if got.Any() != tt.wantValue {
				t.Errorf("ToReading().Any() = %v, want %v", got.Any(), tt.wantValue)
			}
		})
	}
}

func TestReadingString(t *testing.T) {
	if got := Uint64(300).String(); got != "300" {
		t.Errorf("String() = %q, want %q", got, "300")
	}
	if got := Bool(false).String(); got != "false" {
		t.Errorf("String() = %q, want %q", got, "false")
	}
}
