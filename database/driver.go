/*
 * Copyright 2025 saboten-dev.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import "context"

// DB is the driver capability surface the mapping layer consumes: execute a
// DDL statement, run the native parameterized write primitives, run a query
// returning materialized rows, and drive the three-step transaction
// protocol. A DB wraps a single underlying connection handle; the engine's
// own locking serializes access to it.
type DB interface {
	// Execute runs a statement that returns no rows, typically schema DDL.
	Execute(ctx context.Context, sql string) error

	// Insert writes one row from a column-name keyed value map and returns
	// the engine-assigned row id.
	Insert(ctx context.Context, table string, values map[string]interface{}) (int64, error)

	// Update rewrites the rows matched by the where clause and returns the
	// affected row count.
	Update(ctx context.Context, table string, values map[string]interface{}, where string, params []string) (int64, error)

	// Delete removes the rows matched by the where clause and returns the
	// affected row count.
	Delete(ctx context.Context, table string, where string, params []string) (int64, error)

	// Query runs a parameterized select and returns the full result set,
	// eagerly materialized.
	Query(ctx context.Context, sql string, params []string) ([]Row, error)

	// BeginTransaction starts a transaction on this handle. Transactions do
	// not nest.
	BeginTransaction(ctx context.Context) error

	// MarkSuccessful flags the active transaction for commit. Without it,
	// EndTransaction rolls back.
	MarkSuccessful()

	// EndTransaction closes the active transaction, committing only when it
	// was marked successful. It must run on every exit path after
	// BeginTransaction.
	EndTransaction() error

	// Close releases the underlying handle.
	Close() error
}

// Row is a single materialized result row with column-name indexed typed
// accessors for the engine's storage kinds and a column presence check.
// Accessors return the zero value for NULL or absent columns.
type Row interface {
	// Has reports whether the result set contains the column at all; a
	// narrower projection simply omits columns.
	Has(name string) bool

	// IsNull reports whether the column is present and holds NULL.
	IsNull(name string) bool

	Int64(name string) int64
	Float64(name string) float64
	Text(name string) string
	Bytes(name string) []byte

	// Value returns the raw storage value and whether the column is present.
	Value(name string) (interface{}, bool)

	// Columns lists the result set's column names in statement order.
	Columns() []string
}
