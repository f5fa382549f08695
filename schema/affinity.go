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

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// SemanticType is the logical field type recognized by the mapping layer,
// distinct from the physical storage affinity the engine persists.
type SemanticType int

const (
	TypeInt32 SemanticType = iota
	TypeInt64
	TypeFloat64
	TypeText
	TypeBoolean
	TypeTimestamp
	TypeDecimal
	TypeBytes
)

func (t SemanticType) String() string {
	switch t {
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeFloat64:
		return "Float64"
	case TypeText:
		return "Text"
	case TypeBoolean:
		return "Boolean"
	case TypeTimestamp:
		return "Timestamp"
	case TypeDecimal:
		return "Decimal"
	case TypeBytes:
		return "Bytes"
	default:
		return fmt.Sprintf("SemanticType(%d)", int(t))
	}
}

// Affinity is the storage encoding kind the engine actually persists.
// SQLite columns hold one of five primitive kinds (NULL, INTEGER, REAL,
// TEXT, BLOB); the declared affinity only steers conversion on write.
type Affinity string

const (
	AffinityInteger Affinity = "INTEGER"
	AffinityReal    Affinity = "REAL"
	AffinityText    Affinity = "TEXT"
	AffinityBlob    Affinity = "BLOB"
)

// TimestampPattern is the fixed-width storage format for Timestamp values:
// 17 ASCII digits, yyyyMMddHHmmssSSS, zero-padded, millisecond precision,
// no timezone. Being digit-only it survives an INTEGER-affinity column.
const TimestampPattern = "yyyyMMddHHmmssSSS"

const timestampLayout = "20060102150405"

// FormatTimestamp renders t in the TimestampPattern format.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout) + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
}

// ParseTimestamp parses a TimestampPattern string back into a time.Time in
// the local zone. Anything that is not exactly 17 digits is rejected.
func ParseTimestamp(s string) (time.Time, error) {
	if len(s) != 17 {
		return time.Time{}, fmt.Errorf("timestamp must be %d digits (%s), got %d", 17, TimestampPattern, len(s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return time.Time{}, fmt.Errorf("timestamp must be digits only (%s)", TimestampPattern)
		}
	}
	t, err := time.ParseInLocation(timestampLayout, s[:14], time.Local)
	if err != nil {
		return time.Time{}, err
	}
	millis, err := strconv.Atoi(s[14:])
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Duration(millis) * time.Millisecond), nil
}

// Conversion binds a semantic type to its storage affinity and its
// encode/decode pair. Encode receives the dereferenced field value and
// returns one of the engine's storage kinds; Decode receives a non-NULL
// storage value and returns the field's base Go value.
type Conversion struct {
	Affinity Affinity
	Encode   func(v interface{}) (interface{}, error)
	Decode   func(raw interface{}) (interface{}, error)
}

// The registry is a fixed table: one row per semantic type. Unregistered
// semantic types surface as a ConfigurationError at descriptor build time.
var conversions = map[SemanticType]Conversion{
	TypeInt32: {
		Affinity: AffinityInteger,
		Encode: func(v interface{}) (interface{}, error) {
			i, ok := v.(int32)
			if !ok {
				return nil, encodeMismatch("int32", v)
			}
			return int64(i), nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			i, err := asInt64(raw)
			if err != nil {
				return nil, err
			}
			return int32(i), nil
		},
	},
	TypeInt64: {
		Affinity: AffinityInteger,
		Encode: func(v interface{}) (interface{}, error) {
			i, ok := v.(int64)
			if !ok {
				return nil, encodeMismatch("int64", v)
			}
			return i, nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			return asInt64(raw)
		},
	},
	TypeFloat64: {
		Affinity: AffinityReal,
		Encode: func(v interface{}) (interface{}, error) {
			f, ok := v.(float64)
			if !ok {
				return nil, encodeMismatch("float64", v)
			}
			return f, nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			switch x := raw.(type) {
			case float64:
				return x, nil
			case int64:
				return float64(x), nil
			default:
				return nil, decodeMismatch("REAL", raw)
			}
		},
	},
	TypeText: {
		Affinity: AffinityText,
		Encode: func(v interface{}) (interface{}, error) {
			s, ok := v.(string)
			if !ok {
				return nil, encodeMismatch("string", v)
			}
			return s, nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			return asString(raw)
		},
	},
	TypeBoolean: {
		Affinity: AffinityText,
		Encode: func(v interface{}) (interface{}, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, encodeMismatch("bool", v)
			}
			// Exact literals only: "true" or "false", never "1".
			return strconv.FormatBool(b), nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			// Best-effort parse, never an error: only the exact literal
			// "true" decodes as true.
			s, err := asString(raw)
			if err != nil {
				return false, nil
			}
			return s == "true", nil
		},
	},
	TypeTimestamp: {
		// Digit-only text through an INTEGER-affinity column; the engine
		// stores it as an integer and hands it back unchanged.
		Affinity: AffinityInteger,
		Encode: func(v interface{}) (interface{}, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, encodeMismatch("time.Time", v)
			}
			return FormatTimestamp(t), nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			// The engine returns the integer form; restore zero padding
			// before parsing.
			if i, ok := raw.(int64); ok {
				return ParseTimestamp(fmt.Sprintf("%017d", i))
			}
			s, err := asString(raw)
			if err != nil {
				return nil, err
			}
			return ParseTimestamp(s)
		},
	},
	TypeDecimal: {
		Affinity: AffinityText,
		Encode: func(v interface{}) (interface{}, error) {
			d, ok := v.(decimal.Decimal)
			if !ok {
				return nil, encodeMismatch("decimal.Decimal", v)
			}
			// Canonical representation: sign, integer part, optional
			// fraction, no exponent. NewFromString round-trips it exactly.
			return d.String(), nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			s, err := asString(raw)
			if err != nil {
				return nil, err
			}
			return decimal.NewFromString(s)
		},
	},
	TypeBytes: {
		Affinity: AffinityBlob,
		Encode: func(v interface{}) (interface{}, error) {
			b, ok := v.([]byte)
			if !ok {
				return nil, encodeMismatch("[]byte", v)
			}
			return b, nil
		},
		Decode: func(raw interface{}) (interface{}, error) {
			switch x := raw.(type) {
			case []byte:
				return x, nil
			case string:
				return []byte(x), nil
			default:
				return nil, decodeMismatch("BLOB", raw)
			}
		},
	},
}

// ConversionFor returns the registered conversion for a semantic type.
func ConversionFor(t SemanticType) (Conversion, bool) {
	c, ok := conversions[t]
	return c, ok
}

func encodeMismatch(want string, got interface{}) error {
	return fmt.Errorf("expected %s, got %T", want, got)
}

func decodeMismatch(want string, got interface{}) error {
	return fmt.Errorf("expected %s storage value, got %T", want, got)
}

func asInt64(raw interface{}) (int64, error) {
	switch x := raw.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	default:
		return 0, decodeMismatch("INTEGER", raw)
	}
}

func asString(raw interface{}) (string, error) {
	switch x := raw.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return "", decodeMismatch("TEXT", raw)
	}
}
