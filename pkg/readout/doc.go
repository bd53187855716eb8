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

// Package readout exposes the per-group readout facade over the resolve
// fallback chains.
//
// Each group (General, Memory, Battery, Kernel, Product, Init) is an
// interface with one method per field. Fields resolve independently: a
// field that cannot be determined on the current host returns a
// *resolve.Failure listing every attempted source, and other fields are
// unaffected.
//
// Construction goes through a Context, which pins the filesystem roots
// and environment lookup the chains probe. Production callers use
// DefaultContext; tests substitute temp-dir roots and fake environments.
//
// Slow-moving fields (distribution, CPU topology, kernel, product
// identity) are resolved once per process and cached, including their
// failures.
package readout
