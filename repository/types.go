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

package repository

import (
	"context"

	"github.com/saboten-dev/litetable/schema"
	"github.com/saboten-dev/litetable/types"
)

// CrudRepository defines the primary-key based write operations and the
// query operations for a record type.
type CrudRepository[T any] interface {
	// Insert writes the record (identity column excluded) and returns the
	// engine-assigned identity. For a type without an identity column the
	// returned value is the engine's internal row id.
	Insert(ctx context.Context, record *T) (int64, error)

	// Update rewrites the row addressed by the record's current primary key
	// values and returns the affected row count.
	Update(ctx context.Context, record *T) (int64, error)

	// Delete removes the row addressed by the record's current primary key
	// values and returns the affected row count.
	Delete(ctx context.Context, record *T) (int64, error)

	// Get returns the record with the given identity value, or nil when no
	// row matches. It requires an identity column.
	Get(ctx context.Context, id int64) (*T, error)

	// All returns every record in the table.
	All(ctx context.Context) ([]*T, error)

	// List returns the records matching the verbatim where/order clauses,
	// eagerly materialized. An empty result is a non-nil empty slice.
	List(ctx context.Context, where, order string, args ...interface{}) ([]*T, error)

	// Count executes a single-column aggregate query and returns its scalar
	// result; zero returned rows count as 0.
	Count(ctx context.Context, query string, args ...interface{}) (int, error)
}

// PageQueryRepository defines paginated listing.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// SchemaRepository exposes the record type's derived schema.
type SchemaRepository[T any] interface {
	// CreateTable executes the generated CREATE TABLE statement.
	CreateTable(ctx context.Context) error

	// Descriptor returns the record type's cached descriptor.
	Descriptor() *schema.Descriptor

	// Describe renders the record for debug logging.
	Describe(record *T) string
}

// Repository combines CRUD, pagination, and schema operations for one
// record type against one database handle.
type Repository[T any] interface {
	CrudRepository[T]
	PageQueryRepository[T]
	SchemaRepository[T]
}
