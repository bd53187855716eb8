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

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNegotiateAPIVersion(t *testing.T) {
	tests := map[string]string{
		"":                                  DefaultAPIVersion,
		"application/json":                  DefaultAPIVersion,
		"application/vnd.hostfacts.v1+json": "v1",
		"application/vnd.hostfacts.v2+json": DefaultAPIVersion,
		"application/vnd.hostfacts.vX+json": DefaultAPIVersion,
	}

	for accept, want := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/report", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		if got := negotiateAPIVersion(req); got != want {
			t.Errorf("negotiateAPIVersion(Accept=%q) = %q, want %q", accept, got, want)
		}
	}
}

func TestIsValidAPIVersion(t *testing.T) {
	if !isValidAPIVersion("v1") {
		t.Error("v1 should be a valid API version")
	}
	for _, v := range []string{"v2", "", "nope", "V1"} {
		if isValidAPIVersion(v) {
			t.Errorf("isValidAPIVersion(%q) = true, want false", v)
		}
	}
}

func TestSetAPIVersionHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAPIVersionHeader(rec, "v1")
	if got := rec.Header().Get("X-API-Version"); got != "v1" {
		t.Errorf("X-API-Version = %q, want v1", got)
	}
}
