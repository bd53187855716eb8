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

// Package serializer renders reports and summaries to JSON, YAML, or a
// flattened table, and writes JSON HTTP responses.
//
// Usage:
//
//	w := serializer.NewWriter(serializer.FormatYAML, os.Stdout)
//	defer w.Close()
//	if err := w.Serialize(ctx, rep); err != nil {
//		...
//	}
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, rep)
package serializer

import "context"

// Serializer renders a resource to some destination.
//
// The context parameter is used for cancellation and timeouts in
// implementations that perform slow I/O.
type Serializer interface {
	Serialize(ctx context.Context, resource any) error
}

// Closer is an optional interface Serializers implement when they hold
// resources (file handles) that need releasing.
type Closer interface {
	Close() error
}
