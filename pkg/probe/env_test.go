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

package probe

import (
	"errors"
	"os"
	"testing"
)

func TestEnvVar(t *testing.T) {
	env := map[string]string{
		"XDG_CURRENT_DESKTOP": "GNOME",
		"EMPTY":               "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	t.Run("set", func(t *testing.T) {
		e := NewEnvVarWithLookup("XDG_CURRENT_DESKTOP", lookup)
		if !e.Available() {
			t.Fatal("expected available")
		}
		got, err := e.Fetch(t.Context())
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if got != "GNOME" {
			t.Errorf("Fetch() = %q, want GNOME", got)
		}
	})

	t.Run("unset", func(t *testing.T) {
		e := NewEnvVarWithLookup("MISSING", lookup)
		if e.Available() {
			t.Error("expected unavailable")
		}
	})

	t.Run("empty counts as unset", func(t *testing.T) {
		e := NewEnvVarWithLookup("EMPTY", lookup)
		if e.Available() {
			t.Error("expected unavailable for empty value")
		}
	})

	t.Run("fetch unset is not-exist", func(t *testing.T) {
		e := NewEnvVarWithLookup("MISSING", lookup)
		_, err := e.Fetch(t.Context())
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Fetch() error = %v, want not-exist", err)
		}
	})
}
