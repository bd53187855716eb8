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
	"log/slog"
)

// Resolver produces a field's typed value or an aggregate failure. Both
// Chain and Cached satisfy it, so callers can declare chains and decide
// per field whether to memoize.
type Resolver[T any] interface {
	Field() string
	Resolve(ctx context.Context) (T, error)
}

// Chain is the ordered list of sources for one field on the running
// platform. Order is fixed at declaration time; resolution walks it in
// priority order.
type Chain[T any] struct {
	field   string
	sources []Source[T]
}

// NewChain declares the source chain for a field. Sources are tried in the
// given order.
func NewChain[T any](field string, sources ...Source[T]) *Chain[T] {
	return &Chain[T]{field: field, sources: sources}
}

// Field returns the field name this chain resolves.
func (c *Chain[T]) Field() string {
	return c.field
}

// Resolve walks the chain in priority order and returns the first source
// whose accessor and parser both succeed. Unavailable sources are recorded
// without invoking their accessor; fetch and parse failures are recorded and
// the next source is tried. Sources after the first success are not
// evaluated at all. If the chain is exhausted the error is a *Failure with
// the ordered attempt reasons.
func (c *Chain[T]) Resolve(ctx context.Context) (T, error) {
	var zero T

	attempts := make([]*SourceError, 0, len(c.sources))
	for _, src := range c.sources {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, &SourceError{
				Code:    CodeIO,
				Source:  src.name,
				Message: "context done before attempt",
				Cause:   err,
			})
			break
		}

		if src.available != nil && !src.available() {
			attempts = append(attempts, Unavailable(src.name, "source not present"))
			continue
		}

		value, serr := src.run(ctx)
		if serr != nil {
			slog.Debug("source attempt failed",
				"field", c.field,
				"source", src.name,
				"code", string(serr.Code),
			)
			attempts = append(attempts, serr)
			continue
		}

		return value, nil
	}

	return zero, &Failure{Field: c.field, Attempts: attempts}
}
