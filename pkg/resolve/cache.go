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
	"context"
	"sync/atomic"
)

type outcome[T any] struct {
	value T
	err   error
}

// Cached memoizes a chain's first outcome for the lifetime of the process.
// Failures are cached too: if a field's sources were all broken once, they
// are assumed broken for the rest of the process. There is no TTL and no
// invalidation other than process exit.
//
// Concurrent first resolutions may race; each performs the full (idempotent)
// resolution and the first store wins, so the cached outcome is consistent
// without a lock. The redundant work in that window is accepted.
type Cached[T any] struct {
	chain *Chain[T]
	out   atomic.Pointer[outcome[T]]
}

// NewCached wraps a chain with process-lifetime memoization.
func NewCached[T any](chain *Chain[T]) *Cached[T] {
	return &Cached[T]{chain: chain}
}

// Field returns the field name of the underlying chain.
func (c *Cached[T]) Field() string {
	return c.chain.Field()
}

// Resolve returns the memoized outcome, resolving the underlying chain on
// first use.
func (c *Cached[T]) Resolve(ctx context.Context) (T, error) {
	if o := c.out.Load(); o != nil {
		return o.value, o.err
	}

	value, err := c.chain.Resolve(ctx)
	c.out.CompareAndSwap(nil, &outcome[T]{value: value, err: err})

	o := c.out.Load()
	return o.value, o.err
}

// Clear drops the memoized outcome so the next Resolve re-runs the chain.
// Intended for tests only.
func (c *Cached[T]) Clear() {
	c.out.Store(nil)
}
