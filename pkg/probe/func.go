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

import "context"

// Func adapts an arbitrary read-only function (a gopsutil call, a dbus
// property read) into an accessor. Check is optional; a nil Check means the
// source is always worth attempting.
type Func[R any] struct {
	Check func() bool
	Run   func(ctx context.Context) (R, error)
}

// FromFunc wraps a fetch function into an always-available accessor.
func FromFunc[R any](run func(ctx context.Context) (R, error)) Func[R] {
	return Func[R]{Run: run}
}

// Available reports whether the source should be attempted.
func (f Func[R]) Available() bool {
	return f.Check == nil || f.Check()
}

// Fetch invokes the wrapped function.
func (f Func[R]) Fetch(ctx context.Context) (R, error) {
	return f.Run(ctx)
}
