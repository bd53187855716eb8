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

package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"not exist", fs.ErrNotExist, CodeUnavailable},
		{"wrapped not exist", fmt.Errorf("open: %w", fs.ErrNotExist), CodeUnavailable},
		{"command not found", exec.ErrNotFound, CodeUnavailable},
		{"permission", fs.ErrPermission, CodePermission},
		{"wrapped permission", fmt.Errorf("read: %w", fs.ErrPermission), CodePermission},
		{"generic", errors.New("disk on fire"), CodeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("src", tt.err)
			if got.Code != tt.want {
				t.Errorf("Classify() code = %s, want %s", got.Code, tt.want)
			}
			if got.Source != "src" {
				t.Errorf("Classify() source = %q, want src", got.Source)
			}
		})
	}
}

func TestClassify_PassesThroughSourceError(t *testing.T) {
	orig := Unavailable("", "database locked")
	got := Classify("rpm-sqlite", orig)
	if got != orig {
		t.Error("expected the original *SourceError back")
	}
	if got.Source != "rpm-sqlite" {
		t.Errorf("source = %q, want rpm-sqlite", got.Source)
	}
}

func TestSourceErrorMessage(t *testing.T) {
	err := ParseFailure("meminfo", "MemTotal garbage", errors.New("bad unit"))
	msg := err.Error()
	for _, want := range []string{"PARSE_ERROR", "meminfo", "MemTotal garbage", "bad unit"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestParseFailureTruncatesFragment(t *testing.T) {
	long := strings.Repeat("x", 4096)
	err := ParseFailure("big", long, errors.New("nope"))
	if len(err.Fragment) > maxFragmentLen+3 {
		t.Errorf("fragment length = %d, want <= %d", len(err.Fragment), maxFragmentLen+3)
	}
	if !strings.HasSuffix(err.Fragment, "...") {
		t.Error("truncated fragment should end with ellipsis")
	}
}

func TestFailureUnwrap(t *testing.T) {
	inner := Unavailable("sysfs", "no battery")
	f := &Failure{Field: "battery", Attempts: []*SourceError{inner}}

	var se *SourceError
	if !errors.As(f, &se) {
		t.Fatal("errors.As should reach attempts")
	}
	if se != inner {
		t.Error("unwrapped attempt mismatch")
	}
}

func TestIsUnavailable(t *testing.T) {
	if !IsUnavailable(Unavailable("x", "")) {
		t.Error("single unavailable source should report unavailable")
	}
	mixed := &Failure{Field: "f", Attempts: []*SourceError{
		Unavailable("a", ""),
		{Code: CodeParse, Source: "b"},
	}}
	if IsUnavailable(mixed) {
		t.Error("failure with a parse attempt is not an expected absence")
	}
	if IsUnavailable(errors.New("plain")) {
		t.Error("plain error is not an expected absence")
	}
}
