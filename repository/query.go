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
	"strconv"
	"strings"
	"time"

	"github.com/saboten-dev/litetable/schema"
	"github.com/shopspring/decimal"
)

// SelectSQL builds "SELECT * FROM <table>[ WHERE <where>][ <order>]".
// Both clauses pass through verbatim; callers supply parameter placeholders
// rather than literals.
func SelectSQL(d *schema.Descriptor, where, order string) string {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(d.TableName)
	if where != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
	}
	if order != "" {
		sb.WriteString(" ")
		sb.WriteString(order)
	}
	return sb.String()
}

// WhereForKeys builds the primary-key where clause "C1=? AND C2=?" over the
// descriptor's key columns and returns the clause together with the column
// names in clause order.
func WhereForKeys(d *schema.Descriptor) (string, []string) {
	cols := make([]string, len(d.PrimaryKey))
	copy(cols, d.PrimaryKey)
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + "=?"
	}
	return strings.Join(parts, " AND "), cols
}

// FormatParam renders a value as a query parameter string: timestamps use
// the canonical 17-digit pattern, booleans the exact "true"/"false"
// literals, decimals their canonical string form. Pointers are dereferenced;
// a nil pointer renders as the empty string.
func FormatParam(v interface{}) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch x := rv.Interface().(type) {
	case time.Time:
		return schema.FormatTimestamp(x)
	case decimal.Decimal:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
