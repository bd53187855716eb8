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
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
)

// fakeAccessor is a scripted accessor with call-count instrumentation.
type fakeAccessor struct {
	available bool
	value     string
	err       error
	calls     atomic.Int32
}

func (f *fakeAccessor) Available() bool {
	return f.available
}

func (f *fakeAccessor) Fetch(_ context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return f.value, nil
}

func parseInt(raw string) (int, error) {
	return strconv.Atoi(raw)
}

func identity(raw string) (string, error) {
	return raw, nil
}

func TestChainResolve_SuccessAtAnyPosition(t *testing.T) {
	const positions = 3

	for winner := 0; winner < positions; winner++ {
		t.Run(fmt.Sprintf("position_%d", winner), func(t *testing.T) {
			accessors := make([]*fakeAccessor, positions)
			sources := make([]Source[int], positions)
			for i := range accessors {
				accessors[i] = &fakeAccessor{available: i == winner, value: "42"}
				sources[i] = NewSource(fmt.Sprintf("src-%d", i), accessors[i], parseInt)
			}

			chain := NewChain("answer", sources...)
			got, err := chain.Resolve(t.Context())
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != 42 {
				t.Errorf("Resolve() = %d, want 42", got)
			}

			for i, acc := range accessors {
				want := int32(0)
				if i == winner {
					want = 1
				}
				if calls := acc.calls.Load(); calls != want {
					t.Errorf("accessor %d invoked %d times, want %d", i, calls, want)
				}
			}
		})
	}
}

func TestChainResolve_StopsAfterFirstSuccess(t *testing.T) {
	first := &fakeAccessor{available: true, value: "1"}
	second := &fakeAccessor{available: true, value: "2"}

	chain := NewChain("counter",
		NewSource("first", first, parseInt),
		NewSource("second", second, parseInt),
	)

	got, err := chain.Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Resolve() = %d, want 1", got)
	}
	if calls := second.calls.Load(); calls != 0 {
		t.Errorf("second accessor invoked %d times, want 0", calls)
	}
}

func TestChainResolve_UnavailableSkipsAccessor(t *testing.T) {
	absent := &fakeAccessor{available: false, value: "1"}
	present := &fakeAccessor{available: true, value: "2"}

	chain := NewChain("counter",
		NewSource("absent", absent, parseInt),
		NewSource("present", present, parseInt),
	)

	got, err := chain.Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Resolve() = %d, want 2", got)
	}
	if calls := absent.calls.Load(); calls != 0 {
		t.Errorf("unavailable accessor invoked %d times, want 0", calls)
	}
}

func TestChainResolve_ParseErrorFallsThrough(t *testing.T) {
	malformed := &fakeAccessor{available: true, value: "not-a-number"}
	healthy := &fakeAccessor{available: true, value: "7"}

	chain := NewChain("counter",
		NewSource("malformed", malformed, parseInt),
		NewSource("healthy", healthy, parseInt),
	)

	got, err := chain.Resolve(t.Context())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 7 {
		t.Errorf("Resolve() = %d, want 7", got)
	}
}

func TestChainResolve_Exhausted(t *testing.T) {
	chain := NewChain("counter",
		NewSource("absent", &fakeAccessor{available: false}, parseInt),
		NewSource("broken", &fakeAccessor{available: true, err: errors.New("read failed")}, parseInt),
		NewSource("garbled", &fakeAccessor{available: true, value: "garbage"}, parseInt),
	)

	_, err := chain.Resolve(t.Context())
	if err == nil {
		t.Fatal("expected failure, got nil")
	}

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %T", err)
	}

	if failure.Field != "counter" {
		t.Errorf("Field = %q, want counter", failure.Field)
	}
	if len(failure.Attempts) != 3 {
		t.Fatalf("got %d attempts, want 3", len(failure.Attempts))
	}

	wantCodes := []Code{CodeUnavailable, CodeIO, CodeParse}
	for i, want := range wantCodes {
		if got := failure.Attempts[i].Code; got != want {
			t.Errorf("attempt %d code = %s, want %s", i, got, want)
		}
	}

	// Present-but-malformed is distinguishable from nothing-present.
	if failure.AllUnavailable() {
		t.Error("AllUnavailable() = true, want false")
	}
}

func TestChainResolve_ParseErrorKeepsFragment(t *testing.T) {
	chain := NewChain("counter",
		NewSource("garbled", &fakeAccessor{available: true, value: "zzz"}, parseInt),
	)

	_, err := chain.Resolve(t.Context())

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if failure.Attempts[0].Fragment != "zzz" {
		t.Errorf("Fragment = %q, want zzz", failure.Attempts[0].Fragment)
	}
}

func TestChainResolve_Idempotent(t *testing.T) {
	acc := &fakeAccessor{available: true, value: "hello"}
	chain := NewChain("greeting", NewSource("static", acc, identity))

	first, err := chain.Resolve(t.Context())
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := chain.Resolve(t.Context())
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if first != second {
		t.Errorf("resolutions differ: %q vs %q", first, second)
	}
}

func TestChainResolve_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	acc := &fakeAccessor{available: true, value: "1"}
	chain := NewChain("counter", NewSource("src", acc, parseInt))

	_, err := chain.Resolve(ctx)

	var failure *Failure
	if !errors.As(err, &failure) {
		t.Fatalf("expected *Failure, got %T", err)
	}
	if calls := acc.calls.Load(); calls != 0 {
		t.Errorf("accessor invoked %d times after cancellation, want 0", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("failure should wrap context.Canceled")
	}
}

func TestChainResolve_AllUnavailable(t *testing.T) {
	chain := NewChain("battery",
		NewSource("sysfs", &fakeAccessor{available: false}, identity),
		NewSource("upower", &fakeAccessor{available: false}, identity),
	)

	_, err := chain.Resolve(t.Context())
	if !IsUnavailable(err) {
		t.Errorf("IsUnavailable(%v) = false, want true", err)
	}
}
