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

// Package reading provides the typed value model shared by report assembly
// and serialization.
//
// # Core Types
//
//   - Group: enum identifying the readout group a value came from
//     (General, Memory, Battery, Kernel, Product, Init, Packages)
//   - Section: one group's resolved key-value data within a report
//   - Reading: interface for type-safe scalar values (int64, uint64,
//     float64, string, bool, ...)
//
// # Creating Sections
//
// Use the builder for dynamic assembly:
//
//	s := NewSectionBuilder(GroupMemory).
//		SetUint64(KeyMemTotal, total).
//		SetUint64(KeyMemFree, free).
//		Build()
//
// Values marshal as bare scalars in both JSON and YAML, so a serialized
// section reads as a plain object rather than a tree of wrappers.
package reading
