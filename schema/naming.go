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

// ToColumnName converts a camel-case identifier into the column naming
// convention: an underscore is inserted before every internal upper-case
// letter and the whole result is upper-cased. The first character is copied
// verbatim, so "userId" becomes "USER_ID" and "_id" becomes "_ID".
//
// The conversion is one-directional; column names are never reverse-mapped.
// Acronym-style identifiers ("UserID") split on every capital, so record
// fields should camel-case them ("UserId").
func ToColumnName(identifier string) string {
	if identifier == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte(identifier[0])
	for i := 1; i < len(identifier); i++ {
		c := identifier[i]
		if c >= 'A' && c <= 'Z' {
			sb.WriteByte('_')
		}
		sb.WriteByte(c)
	}
	return strings.ToUpper(sb.String())
}
