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

import "testing"

// FuzzParseVersion exercises ParseVersion with arbitrary input. Parsing
// must never panic, and anything it accepts must survive a re-parse of
// its own String output.
func FuzzParseVersion(f *testing.F) {
	seeds := []string{
		"6.8.0-51-generic",
		"6.12.4-arch1-1",
		"255",
		"24.04",
		"v1.2.3",
		"1.2.3+build99",
		"",
		"1.2.3.4",
		"-1",
		"...",
		"6..8",
		"0.0.0",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}

		if !IsVersionShaped(v.String()) {
			t.Errorf("round-trip failed: ParseVersion(%q) = %+v, String() = %q does not re-parse",
				input, v, v.String())
		}

		if v.Precision < 1 || v.Precision > 3 {
			t.Errorf("ParseVersion(%q) produced invalid precision %d", input, v.Precision)
		}
		if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
			t.Errorf("ParseVersion(%q) produced negative component: %+v", input, v)
		}
	})
}
