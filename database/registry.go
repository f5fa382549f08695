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

import (
	"context"
	"sort"
	"sync"

	"github.com/saboten-dev/litetable/schema"
)

var defaultRegistry = newRecordRegistry()

// RecordModel pairs a record prototype with a priority controlling table
// creation order (lower values first).
type RecordModel interface {
	Instance() interface{}
	Priority() int
}

// RecordRegistry stores record models and exposes them in a deterministic
// order.
type RecordRegistry interface {
	Register(model RecordModel)
	Models() []RecordModel
}

type recordRegistry struct {
	models []RecordModel
	mutex  sync.RWMutex
}

func newRecordRegistry() RecordRegistry {
	return &recordRegistry{models: make([]RecordModel, 0)}
}

func (r *recordRegistry) Register(model RecordModel) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.models = append(r.models, model)
}

func (r *recordRegistry) Models() []RecordModel {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	result := make([]RecordModel, len(r.models))
	copy(result, r.models)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority() < result[j].Priority()
	})
	return result
}

type recordAdapter struct {
	instance interface{}
	priority int
}

// NewRecordModel wraps a record prototype and priority into a RecordModel.
func NewRecordModel(instance interface{}, priority int) RecordModel {
	return &recordAdapter{instance: instance, priority: priority}
}

func (a *recordAdapter) Instance() interface{} { return a.instance }

func (a *recordAdapter) Priority() int { return a.priority }

// RegisterRecord adds a record prototype to the default registry so its
// table is created by CreateTables.
func RegisterRecord(model RecordModel) {
	defaultRegistry.Register(model)
}

// RegisteredRecords returns the default registry's models in priority order.
func RegisteredRecords() []RecordModel {
	return defaultRegistry.Models()
}

// CreateTables derives the schema of every registered record type and
// executes its CREATE TABLE statement, in priority order. A descriptor
// failure aborts immediately; it is a configuration error, not a driver one.
func CreateTables(ctx context.Context, db DB) error {
	for _, model := range RegisteredRecords() {
		desc, err := schema.Describe(model.Instance())
		if err != nil {
			return err
		}
		if err := db.Execute(ctx, schema.CreateTableSQL(desc)); err != nil {
			return err
		}
	}
	return nil
}
