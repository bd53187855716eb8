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
	"context"
	"fmt"
	"os"
)

// LookupFunc resolves an environment variable, reporting presence. It
// matches os.LookupEnv so the process environment is the default, while
// tests and the readout context can inject their own.
type LookupFunc func(key string) (string, bool)

// EnvVar reads one environment variable. An unset or empty variable is
// unavailable; resolution falls through to the next source without an
// attempt.
type EnvVar struct {
	key    string
	lookup LookupFunc
}

// NewEnvVar creates an environment variable probe using the process
// environment.
func NewEnvVar(key string) EnvVar {
	return NewEnvVarWithLookup(key, os.LookupEnv)
}

// NewEnvVarWithLookup creates an environment variable probe with a custom
// lookup.
func NewEnvVarWithLookup(key string, lookup LookupFunc) EnvVar {
	return EnvVar{key: key, lookup: lookup}
}

// Available reports whether the variable is set to a non-empty value.
func (e EnvVar) Available() bool {
	v, ok := e.lookup(e.key)
	return ok && v != ""
}

// Fetch returns the variable's value.
func (e EnvVar) Fetch(_ context.Context) (string, error) {
	v, ok := e.lookup(e.key)
	if !ok || v == "" {
		return "", fmt.Errorf("environment variable %s not set: %w", e.key, os.ErrNotExist)
	}
	return v, nil
}
