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

// Package litetable maps plain record structs onto tables of an embedded
// SQLite database: schema, queries, and value conversions are derived from
// the struct's fields, with no hand-written SQL or binding code.
package litetable

import (
	"context"
	"sync"

	"github.com/saboten-dev/litetable/database"
	"github.com/saboten-dev/litetable/repository"
	"github.com/saboten-dev/litetable/types"
)

// Service is the record-type facade over the global database connection.
type Service[T any] interface {
	// Get returns a single record by its identity value, or nil.
	Get(ctx context.Context, id int64) (*T, error)

	// All returns all records.
	All(ctx context.Context) ([]*T, error)

	// List returns the records matching the verbatim where/order clauses.
	List(ctx context.Context, where, order string, args ...interface{}) ([]*T, error)

	// Page returns a paginated list of records.
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)

	// Count runs a single-column aggregate query.
	Count(ctx context.Context, query string, args ...interface{}) (int, error)

	// Save inserts a new record and returns the engine-assigned identity.
	Save(ctx context.Context, record *T) (int64, error)

	// Update rewrites an existing record by its primary key.
	Update(ctx context.Context, record *T) (int64, error)

	// Delete removes a record by its primary key.
	Delete(ctx context.Context, record *T) (int64, error)
}

type baseServiceImpl[T any] struct {
	repo repository.Repository[T]
	err  error
	once sync.Once
}

// NewService returns a Service backed by the generic repository and the
// global database connection opened by database.Init.
func NewService[T any]() Service[T] {
	return &baseServiceImpl[T]{}
}

func (s *baseServiceImpl[T]) baseRepo() (repository.Repository[T], error) {
	s.once.Do(func() {
		s.repo, s.err = repository.NewRepository[T](database.Get())
	})
	return s.repo, s.err
}

func (s *baseServiceImpl[T]) Get(ctx context.Context, id int64) (*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

func (s *baseServiceImpl[T]) All(ctx context.Context) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.All(ctx)
}

func (s *baseServiceImpl[T]) List(ctx context.Context, where, order string, args ...interface{}) ([]*T, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx, where, order, args...)
}

func (s *baseServiceImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	repo, err := s.baseRepo()
	if err != nil {
		return nil, err
	}
	return repo.Page(ctx, page)
}

func (s *baseServiceImpl[T]) Count(ctx context.Context, query string, args ...interface{}) (int, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Count(ctx, query, args...)
}

func (s *baseServiceImpl[T]) Save(ctx context.Context, record *T) (int64, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Insert(ctx, record)
}

func (s *baseServiceImpl[T]) Update(ctx context.Context, record *T) (int64, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Update(ctx, record)
}

func (s *baseServiceImpl[T]) Delete(ctx context.Context, record *T) (int64, error) {
	repo, err := s.baseRepo()
	if err != nil {
		return 0, err
	}
	return repo.Delete(ctx, record)
}
