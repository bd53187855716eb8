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

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/hostfacts/hostfacts/pkg/defaults"
	"github.com/hostfacts/hostfacts/pkg/resolve"
)

// SQLiteCount runs one fixed counting query against a SQLite database,
// read-only. A database locked by a concurrent writer (the package
// manager's own process) is reported as unavailable after a short busy
// timeout; this is a point-in-time probe with no retry.
type SQLiteCount struct {
	path  string
	query string
}

// NewSQLiteCount creates a counting probe. The query must produce a single
// integer in its first result column.
func NewSQLiteCount(path, query string) SQLiteCount {
	return SQLiteCount{path: path, query: query}
}

// Available reports whether the database file exists.
func (p SQLiteCount) Available() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// Fetch opens the database read-only and runs the counting query.
func (p SQLiteCount) Fetch(ctx context.Context) (int64, error) {
	conn, err := sqlite.OpenConn(p.path, sqlite.OpenReadOnly)
	if err != nil {
		return 0, p.classify(err)
	}
	defer conn.Close()

	conn.SetInterrupt(ctx.Done())
	conn.SetBusyTimeout(defaults.SQLiteBusyTimeout)

	var count int64
	found := false
	err = sqlitex.Execute(conn, p.query, &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			count = stmt.ColumnInt64(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return 0, p.classify(err)
	}
	if !found {
		return 0, fmt.Errorf("query %q returned no rows", p.query)
	}

	return count, nil
}

// classify maps library-specific result codes into the accessor taxonomy
// so no sqlite error representation leaks past this boundary.
func (p SQLiteCount) classify(err error) error {
	switch sqlite.ErrCode(err) {
	case sqlite.ResultBusy, sqlite.ResultLocked:
		return resolve.Unavailable("", fmt.Sprintf("database %s locked by concurrent writer", p.path))
	}
	return fmt.Errorf("failed to query %s: %w", p.path, err)
}
