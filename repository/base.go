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
	"fmt"
	"reflect"
	"strings"

	"github.com/saboten-dev/litetable/database"
	"github.com/saboten-dev/litetable/schema"
	"github.com/saboten-dev/litetable/types"
)

type baseRepositoryImpl[T any] struct {
	db     database.DB
	desc   *schema.Descriptor
	logger database.Logger
}

// NewRepository returns a generic repository for T backed by the provided
// database handle. The descriptor is built (or fetched from the process-wide
// cache) here, so configuration errors in T surface at construction, not at
// use time.
func NewRepository[T any](db database.DB) (Repository[T], error) {
	var probe T
	desc, err := schema.DescriptorOf(reflect.TypeOf(probe))
	if err != nil {
		return nil, err
	}
	return &baseRepositoryImpl[T]{db: db, desc: desc, logger: database.GetLogger()}, nil
}

func (r *baseRepositoryImpl[T]) Descriptor() *schema.Descriptor { return r.desc }

func (r *baseRepositoryImpl[T]) Describe(record *T) string {
	return DescribeRecord(r.desc, record)
}

func (r *baseRepositoryImpl[T]) CreateTable(ctx context.Context) error {
	return r.db.Execute(ctx, schema.CreateTableSQL(r.desc))
}

func (r *baseRepositoryImpl[T]) Insert(ctx context.Context, record *T) (int64, error) {
	values, err := ToValues(r.desc, record)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("insert", "table", r.desc.TableName, "record", DescribeRecord(r.desc, record))
	return r.db.Insert(ctx, r.desc.TableName, values)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, record *T) (int64, error) {
	values, err := ToValues(r.desc, record)
	if err != nil {
		return 0, err
	}
	where, _ := WhereForKeys(r.desc)
	params, err := KeyParams(r.desc, record)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("update", "table", r.desc.TableName, "record", DescribeRecord(r.desc, record))
	return r.db.Update(ctx, r.desc.TableName, values, where, params)
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, record *T) (int64, error) {
	where, _ := WhereForKeys(r.desc)
	params, err := KeyParams(r.desc, record)
	if err != nil {
		return 0, err
	}
	r.logger.Debug("delete", "table", r.desc.TableName, "record", DescribeRecord(r.desc, record))
	return r.db.Delete(ctx, r.desc.TableName, where, params)
}

func (r *baseRepositoryImpl[T]) Get(ctx context.Context, id int64) (*T, error) {
	identity := r.desc.Identity()
	if identity == nil {
		return nil, fmt.Errorf("repository: %s has no identity column", r.desc.TableName)
	}
	records, err := r.List(ctx, identity.Name+"=?", "", id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func (r *baseRepositoryImpl[T]) All(ctx context.Context) ([]*T, error) {
	return r.List(ctx, "", "")
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, where, order string, args ...interface{}) ([]*T, error) {
	query := SelectSQL(r.desc, where, order)
	rows, err := r.db.Query(ctx, query, formatParams(args))
	if err != nil {
		return nil, err
	}
	records := make([]*T, 0, len(rows))
	for _, row := range rows {
		rec, err := FromRow(r.desc, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec.(*T))
	}
	return records, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context, query string, args ...interface{}) (int, error) {
	rows, err := r.db.Query(ctx, query, formatParams(args))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	cols := rows[0].Columns()
	if len(cols) == 0 {
		return 0, nil
	}
	return int(rows[0].Int64(cols[0])), nil
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error) {
	where := ""
	var args []interface{}
	if f := page.GetFilter(); f != nil {
		where = f.Where
		args = f.Args
	}

	countSQL := "SELECT COUNT(*) FROM " + r.desc.TableName
	if where != "" {
		countSQL += " WHERE " + where
	}
	pagination := types.NewDefaultPagination[T](page.GetPage(), page.GetPageSize())
	total, err := r.Count(ctx, countSQL, args...)
	if err != nil || total == 0 {
		return pagination, err
	}

	order := ""
	if orders := page.GetOrders(); len(orders) > 0 {
		order = "ORDER BY " + strings.Join(orders, ", ") + " "
	}
	order += fmt.Sprintf("LIMIT %d OFFSET %d", page.GetPageSize(), page.GetOffset())
	items, err := r.List(ctx, where, order, args...)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = items
	return pagination, nil
}

func formatParams(args []interface{}) []string {
	params := make([]string, len(args))
	for i, a := range args {
		params[i] = FormatParam(a)
	}
	return params
}
