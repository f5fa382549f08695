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

package schema

import "strings"

// CreateTableSQL generates the CREATE TABLE statement for a descriptor.
// Column order follows the descriptor exactly, so repeated calls produce
// byte-identical text. The identity column emits as
// "<name> INTEGER PRIMARY KEY AUTOINCREMENT" and never reappears in a
// trailing composite key clause; a declared key other than the identity
// alone is appended as "PRIMARY KEY (c1,c2)".
func CreateTableSQL(d *Descriptor) string {
	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(d.TableName)
	sb.WriteString("(")
	for i := range d.Columns {
		col := &d.Columns[i]
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(col.Name)
		if col.Identity {
			sb.WriteString(" INTEGER PRIMARY KEY AUTOINCREMENT")
			continue
		}
		conv, _ := ConversionFor(col.Type)
		sb.WriteString(" ")
		sb.WriteString(string(conv.Affinity))
		if !col.Nullable {
			sb.WriteString(" NOT NULL")
		}
	}
	if cols := compositeKey(d); len(cols) > 0 {
		sb.WriteString(",PRIMARY KEY (")
		sb.WriteString(strings.Join(cols, ","))
		sb.WriteString(")")
	}
	sb.WriteString(")")
	return sb.String()
}

// compositeKey returns the declared key columns for the trailing clause, or
// nil when the identity column alone is the key.
func compositeKey(d *Descriptor) []string {
	id := d.Identity()
	if id != nil && len(d.PrimaryKey) == 1 && d.PrimaryKey[0] == id.Name {
		return nil
	}
	var cols []string
	for _, name := range d.PrimaryKey {
		if id != nil && name == id.Name {
			continue
		}
		cols = append(cols, name)
	}
	return cols
}
