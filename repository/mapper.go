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
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/saboten-dev/litetable/database"
	"github.com/saboten-dev/litetable/schema"
)

// ToValues converts a record instance into the column-name keyed storage
// value map for writes. The identity column is skipped: it is engine
// assigned, never written. Nil pointer fields map to NULL storage.
func ToValues(d *schema.Descriptor, record interface{}) (map[string]interface{}, error) {
	rv, err := structValue(d, record)
	if err != nil {
		return nil, err
	}
	values := make(map[string]interface{}, len(d.Columns))
	for i := range d.Columns {
		col := &d.Columns[i]
		if col.Identity {
			continue
		}
		fv := rv.Field(col.FieldIndex())
		if col.Ptr() || col.Type == schema.TypeBytes {
			if fv.IsNil() {
				values[col.Name] = nil
				continue
			}
			if col.Ptr() {
				fv = fv.Elem()
			}
		}
		conv, ok := schema.ConversionFor(col.Type)
		if !ok {
			return nil, &schema.TypeMismatchError{Field: fieldRef(d, col), Want: col.Type.String(), Got: fv.Type().String()}
		}
		sv, err := conv.Encode(fv.Interface())
		if err != nil {
			return nil, &schema.TypeMismatchError{Field: fieldRef(d, col), Want: col.Type.String(), Got: fv.Type().String()}
		}
		values[col.Name] = sv
	}
	return values, nil
}

// FromRow materializes a fresh record from a result row. Columns absent from
// the row (a narrower projection) and NULL values leave the corresponding
// field at its zero value; that is not an error.
func FromRow(d *schema.Descriptor, row database.Row) (interface{}, error) {
	pv := reflect.New(d.GoType())
	rv := pv.Elem()
	for i := range d.Columns {
		col := &d.Columns[i]
		raw, present := row.Value(col.Name)
		if !present || raw == nil {
			continue
		}
		conv, ok := schema.ConversionFor(col.Type)
		if !ok {
			return nil, &schema.ConversionError{Column: col.Name, Value: fmt.Sprintf("%v", raw), Err: fmt.Errorf("no conversion for %s", col.Type)}
		}
		base, err := conv.Decode(raw)
		if err != nil {
			return nil, &schema.ConversionError{Column: col.Name, Value: fmt.Sprintf("%v", raw), Err: err}
		}
		fv := rv.Field(col.FieldIndex())
		bv := reflect.ValueOf(base)
		if col.Ptr() {
			p := reflect.New(fv.Type().Elem())
			p.Elem().Set(bv)
			fv.Set(p)
		} else {
			fv.Set(bv)
		}
	}
	return pv.Interface(), nil
}

// KeyParams extracts the record's primary-key values as ordered query
// parameters, matching the column order of WhereForKeys.
func KeyParams(d *schema.Descriptor, record interface{}) ([]string, error) {
	rv, err := structValue(d, record)
	if err != nil {
		return nil, err
	}
	params := make([]string, 0, len(d.PrimaryKey))
	for _, name := range d.PrimaryKey {
		col := d.ColumnByName(name)
		if col == nil {
			return nil, fmt.Errorf("repository: unknown primary key column %s", name)
		}
		fv := rv.Field(col.FieldIndex())
		if col.Ptr() && fv.IsNil() {
			return nil, fmt.Errorf("repository: primary key field %s is nil", col.FieldName)
		}
		params = append(params, FormatParam(fv.Interface()))
	}
	return params, nil
}

// DescribeRecord renders a record as "<TypeName>[field1=val1,field2=val2]"
// in descriptor column order, with "<null>" standing in for nil values.
// It is intended for debug logging of rows read from or written to the
// database.
func DescribeRecord(d *schema.Descriptor, record interface{}) string {
	rv, err := structValue(d, record)
	if err != nil {
		return fmt.Sprintf("%s[!%v]", d.GoType().Name(), err)
	}
	parts := make([]string, 0, len(d.Columns))
	for i := range d.Columns {
		col := &d.Columns[i]
		fv := rv.Field(col.FieldIndex())
		parts = append(parts, col.FieldName+"="+renderValue(col, fv))
	}
	return d.GoType().Name() + "[" + strings.Join(parts, ",") + "]"
}

func renderValue(col *schema.Column, fv reflect.Value) string {
	if col.Ptr() || col.Type == schema.TypeBytes {
		if fv.IsNil() {
			return "<null>"
		}
		if col.Ptr() {
			fv = fv.Elem()
		}
	}
	if t, ok := fv.Interface().(time.Time); ok {
		return schema.FormatTimestamp(t)
	}
	return fmt.Sprintf("%v", fv.Interface())
}

// structValue unwraps a record to its struct value and enforces that its
// type matches the descriptor. The record type contract is static and must
// hold at every call.
func structValue(d *schema.Descriptor, record interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return reflect.Value{}, &schema.TypeMismatchError{Field: d.GoType().Name(), Want: d.GoType().String(), Got: "nil"}
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != d.GoType() {
		got := "nil"
		if rv.IsValid() {
			got = rv.Type().String()
		}
		return reflect.Value{}, &schema.TypeMismatchError{Field: d.GoType().Name(), Want: d.GoType().String(), Got: got}
	}
	return rv, nil
}

func fieldRef(d *schema.Descriptor, col *schema.Column) string {
	return d.GoType().Name() + "." + col.FieldName
}
