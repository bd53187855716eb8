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
	"fmt"
)

// Accessor fetches raw data from one concrete source. Implementations are
// read-only probes: they never mutate machine state. Available is a cheap
// pre-check (file exists, command on PATH) evaluated before Fetch; Fetch
// errors must be classifiable by Classify.
type Accessor[R any] interface {
	Available() bool
	Fetch(ctx context.Context) (R, error)
}

// Parser is a pure function normalizing one accessor's raw output into the
// field's typed value.
type Parser[R, T any] func(raw R) (T, error)

// Source is one candidate means of producing a field's value: an accessor
// paired with a parser, plus the accessor's availability predicate. Sources
// are declared once at startup and immutable for the process lifetime.
type Source[T any] struct {
	name      string
	available func() bool
	run       func(ctx context.Context) (T, *SourceError)
}

// Name returns the declared source name.
func (s Source[T]) Name() string {
	return s.name
}

// NewSource pairs an accessor with a parser under a diagnostic name. A fetch
// failure is classified into the accessor taxonomy; a parse failure is
// recorded as CodeParse with an excerpt of the offending raw output. In both
// cases resolution moves on to the next source, never to a partially-parsed
// value.
func NewSource[R, T any](name string, acc Accessor[R], parse Parser[R, T]) Source[T] {
	return Source[T]{
		name:      name,
		available: acc.Available,
		run: func(ctx context.Context) (T, *SourceError) {
			var zero T

			raw, err := acc.Fetch(ctx)
			if err != nil {
				return zero, Classify(name, err)
			}

			value, err := parse(raw)
			if err != nil {
				return zero, ParseFailure(name, fmt.Sprintf("%v", raw), err)
			}

			return value, nil
		},
	}
}
