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
	"io/fs"
	"os/exec"
	"strings"
)

// Code classifies a per-source failure.
type Code string

const (
	// CodeUnavailable indicates the source is not present on this machine.
	// Expected and non-exceptional: a laptop without a battery, a distro
	// without dpkg.
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeIO indicates the source is present but reading it failed.
	CodeIO Code = "IO_ERROR"
	// CodePermission indicates the source is present but access was denied.
	CodePermission Code = "PERMISSION_DENIED"
	// CodeParse indicates the source was read but its content violates the
	// expected format.
	CodeParse Code = "PARSE_ERROR"
)

// maxFragmentLen bounds the offending-input excerpt kept on parse errors.
const maxFragmentLen = 120

// SourceError is the outcome of one failed source attempt. It carries the
// classification code, the source name, and enough detail for diagnostics.
type SourceError struct {
	Code     Code
	Source   string
	Message  string
	Fragment string
	Cause    error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Source)
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	if e.Fragment != "" {
		fmt.Fprintf(&b, " (input %q)", e.Fragment)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Unavailable creates a SourceError marking the source as not present.
func Unavailable(source, message string) *SourceError {
	return &SourceError{Code: CodeUnavailable, Source: source, Message: message}
}

// ParseFailure creates a SourceError for malformed source content, keeping a
// bounded excerpt of the offending input for diagnostics.
func ParseFailure(source, fragment string, cause error) *SourceError {
	return &SourceError{
		Code:     CodeParse,
		Source:   source,
		Message:  "unexpected content",
		Fragment: truncate(fragment),
		Cause:    cause,
	}
}

// Classify normalizes an accessor error into the three-kind taxonomy. A
// *SourceError passes through (adopting the source name if it has none);
// not-exist conditions map to CodeUnavailable, permission denials to
// CodePermission, and everything else to CodeIO. Accessors never leak
// library-specific error types past this boundary.
func Classify(source string, err error) *SourceError {
	var se *SourceError
	if errors.As(err, &se) {
		if se.Source == "" {
			se.Source = source
		}
		return se
	}

	code := CodeIO
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, exec.ErrNotFound):
		code = CodeUnavailable
	case errors.Is(err, fs.ErrPermission):
		code = CodePermission
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = CodeIO
	}

	return &SourceError{Code: code, Source: source, Cause: err}
}

// Failure is the aggregate outcome of an exhausted chain: every source was
// attempted (or found unavailable) and none produced a value. Attempts are
// in chain order.
type Failure struct {
	Field    string
	Attempts []*SourceError
}

// Error implements the error interface.
func (f *Failure) Error() string {
	if len(f.Attempts) == 0 {
		return fmt.Sprintf("%s: no sources declared", f.Field)
	}
	last := f.Attempts[len(f.Attempts)-1]
	return fmt.Sprintf("%s: all %d sources failed; last: %v", f.Field, len(f.Attempts), last)
}

// Unwrap exposes every attempt to errors.Is and errors.As.
func (f *Failure) Unwrap() []error {
	errs := make([]error, len(f.Attempts))
	for i, a := range f.Attempts {
		errs[i] = a
	}
	return errs
}

// Reasons returns the ordered human-readable attempt descriptions.
func (f *Failure) Reasons() []string {
	reasons := make([]string, len(f.Attempts))
	for i, a := range f.Attempts {
		reasons[i] = a.Error()
	}
	return reasons
}

// AllUnavailable reports whether every attempted source was simply absent.
// Callers use this to distinguish "nothing present" from "present but
// broken" when deciding how loudly to report a Failure.
func (f *Failure) AllUnavailable() bool {
	for _, a := range f.Attempts {
		if a.Code != CodeUnavailable {
			return false
		}
	}
	return len(f.Attempts) > 0
}

// IsUnavailable reports whether err represents an expected absence: either a
// single unavailable source or a chain whose sources were all absent.
func IsUnavailable(err error) bool {
	// The aggregate check must run first: errors.As would otherwise reach
	// through Failure.Unwrap and report only the first attempt.
	var f *Failure
	if errors.As(err, &f) {
		return f.AllUnavailable()
	}
	var se *SourceError
	if errors.As(err, &se) {
		return se.Code == CodeUnavailable
	}
	return false
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxFragmentLen {
		return s
	}
	return s[:maxFragmentLen] + "..."
}
