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

package pkgcount

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostfacts/hostfacts/pkg/probe"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

func alwaysPresent() bool { return true }

func fixedCount(name string, n int64) resolve.Source[int64] {
	return resolve.NewSource(name,
		probe.FromFunc(func(_ context.Context) (int64, error) { return n, nil }),
		countIdentity,
	)
}

func brokenCount(name string) resolve.Source[int64] {
	return resolve.NewSource(name,
		probe.FromFunc(func(_ context.Context) (int64, error) {
			return 0, errors.New("manifest corrupted")
		}),
		countIdentity,
	)
}

func TestRegistryCount_Additive(t *testing.T) {
	reg := NewRegistry(
		NewManager("dpkg", alwaysPresent, fixedCount("dpkg-status", 1500)),
		NewManager("flatpak", alwaysPresent, fixedCount("flatpak-system", 12)),
		NewManager("cargo", alwaysPresent, fixedCount("cargo-bin", 7)),
	)

	s := reg.Count(t.Context())

	require.Len(t, s.Counts, 3)
	assert.Equal(t, int64(1500), s.Counts["dpkg"])
	assert.Equal(t, int64(12), s.Counts["flatpak"])
	assert.Equal(t, int64(7), s.Counts["cargo"])
	assert.Equal(t, int64(1519), s.Total)
	assert.Empty(t, s.Failures)
}

func TestRegistryCount_PartialFailure(t *testing.T) {
	reg := NewRegistry(
		NewManager("dpkg", alwaysPresent, fixedCount("dpkg-status", 100)),
		NewManager("rpm", alwaysPresent, brokenCount("rpm-sqlite")),
		NewManager("snap", alwaysPresent, fixedCount("snap-snaps", 5)),
	)

	s := reg.Count(t.Context())

	// The broken manager contributes zero and is absent from the
	// breakdown; the others are unaffected.
	assert.Equal(t, int64(105), s.Total)
	assert.NotContains(t, s.Counts, "rpm")
	assert.Contains(t, s.Failures, "rpm")
	assert.Contains(t, s.Failures["rpm"], "manifest corrupted")
}

func TestRegistryCount_AbsentManagerSkipped(t *testing.T) {
	neverPresent := func() bool { return false }

	reg := NewRegistry(
		NewManager("pacman", neverPresent, fixedCount("pacman-local", 999)),
		NewManager("dpkg", alwaysPresent, fixedCount("dpkg-status", 3)),
	)

	s := reg.Count(t.Context())

	// An absent manager is normal: no count, no failure entry.
	assert.Equal(t, int64(3), s.Total)
	assert.NotContains(t, s.Counts, "pacman")
	assert.NotContains(t, s.Failures, "pacman")
}

func TestRegistryCount_ConcurrentManagers(t *testing.T) {
	// Managers count in parallel; the summary must come out consistent
	// with a mix of outcomes landing in any order.
	var managers []Manager
	var wantTotal int64
	for i := range 16 {
		name := fmt.Sprintf("mgr-%02d", i)
		if i%4 == 3 {
			managers = append(managers, NewManager(name, alwaysPresent, brokenCount(name)))
			continue
		}
		n := int64(i + 1)
		wantTotal += n
		managers = append(managers, NewManager(name, alwaysPresent, fixedCount(name, n)))
	}

	s := NewRegistry(managers...).Count(t.Context())

	assert.Equal(t, wantTotal, s.Total)
	assert.Len(t, s.Counts, 12)
	assert.Len(t, s.Failures, 4)
}

func TestRegistryCount_ZeroIsValid(t *testing.T) {
	reg := NewRegistry(
		NewManager("flatpak", alwaysPresent, fixedCount("flatpak-system", 0)),
	)

	s := reg.Count(t.Context())

	assert.Equal(t, int64(0), s.Total)
	assert.Contains(t, s.Counts, "flatpak")
}

func TestRegistryCount_AllStoresAbsent(t *testing.T) {
	unavailable := resolve.NewSource("missing",
		probe.Func[int64]{
			Check: func() bool { return false },
			Run:   func(_ context.Context) (int64, error) { return 0, nil },
		},
		countIdentity,
	)

	reg := NewRegistry(NewManager("rpm", alwaysPresent, unavailable))
	s := reg.Count(t.Context())

	assert.Equal(t, "no readable package store", s.Failures["rpm"])
}

func TestManagerChain_FallbackWithinManager(t *testing.T) {
	primary := resolve.NewSource("enum",
		probe.Func[int64]{
			Check: func() bool { return false },
			Run:   func(_ context.Context) (int64, error) { return 1, nil },
		},
		countIdentity,
	)
	fallback := fixedCount("query", 42)

	m := NewManager("managerA", alwaysPresent, primary, fallback)

	n, err := m.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}
