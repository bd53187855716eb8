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
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// Manager is one package-management system declaration: an identity, a
// cheap presence predicate, and a chain of counting strategies tried in
// order. Declarations are immutable for the process lifetime.
type Manager struct {
	name      string
	available func() bool
	counter   *resolve.Chain[int64]
}

// NewManager declares a manager with its counting strategies. The
// availability predicate gates the whole manager; individual strategies
// carry their own availability on top.
func NewManager(name string, available func() bool, strategies ...resolve.Source[int64]) Manager {
	return Manager{
		name:      name,
		available: available,
		counter:   resolve.NewChain("packages."+name, strategies...),
	}
}

// Name returns the manager identity.
func (m Manager) Name() string {
	return m.name
}

// Present reports whether the manager appears to exist on this machine.
func (m Manager) Present() bool {
	return m.available == nil || m.available()
}

// Count resolves the manager's package count through its strategy chain.
func (m Manager) Count(ctx context.Context) (int64, error) {
	return m.counter.Resolve(ctx)
}

// Summary is the outcome of counting across all present managers. Counts
// holds per-manager results; Total is their sum. A manager that failed is
// absent from Counts, contributes zero to Total, and has its reason kept in
// Failures for diagnostics.
type Summary struct {
	Counts   map[string]int64  `json:"counts" yaml:"counts"`
	Total    int64             `json:"total" yaml:"total"`
	Failures map[string]string `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Registry holds the package-manager declarations for the running platform.
type Registry struct {
	managers []Manager
}

// NewRegistry creates a registry from explicit declarations.
func NewRegistry(managers ...Manager) *Registry {
	return &Registry{managers: managers}
}

// Managers returns the declared managers in declaration order.
func (r *Registry) Managers() []Manager {
	return r.managers
}

// Count counts packages for every present manager. Present managers are
// counted concurrently. Counting is additive with partial-failure
// semantics: each manager is attempted independently, and one broken
// manifest never suppresses valid counts from the rest. Managers whose
// presence predicate fails are skipped silently; an absent manager is
// normal, not a failure.
func (r *Registry) Count(ctx context.Context) *Summary {
	summary := &Summary{
		Counts: make(map[string]int64, len(r.managers)),
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, m := range r.managers {
		if !m.Present() {
			continue
		}

		g.Go(func() error {
			n, err := m.Count(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Debug("package count failed",
					"manager", m.name,
					"error", err,
				)
				if summary.Failures == nil {
					summary.Failures = make(map[string]string)
				}
				summary.Failures[m.name] = failureReason(err)
				return nil
			}

			summary.Counts[m.name] = n
			summary.Total += n
			return nil
		})
	}
	_ = g.Wait()

	return summary
}

// failureReason renders a compact diagnostic, preferring the last concrete
// attempt over the aggregate wrapper.
func failureReason(err error) string {
	var f *resolve.Failure
	if errors.As(err, &f) && f.AllUnavailable() {
		return "no readable package store"
	}
	return err.Error()
}
