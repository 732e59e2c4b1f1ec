// Copyright (c) 2020 Mercari, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package override

import (
	"math"

	"go.mercari.io/reveng/strategy"
)

// Sentinels of SQLTypeMapping fields matching any value.
const (
	UnknownLength    = math.MaxInt32
	UnknownPrecision = math.MaxInt32
	UnknownScale     = math.MaxInt32
)

// SQLTypeMapping maps a source type to a target type name.
type SQLTypeMapping struct {
	Code      strategy.TypeCode
	Length    int
	Precision int
	Scale     int
	Nullable  *bool // nil matches both
	TypeName  string
}

// NewSQLTypeMapping returns a mapping of code to typeName matching any
// length, precision, scale and nullability.
func NewSQLTypeMapping(code strategy.TypeCode, typeName string) SQLTypeMapping {
	return SQLTypeMapping{
		Code:      code,
		Length:    UnknownLength,
		Precision: UnknownPrecision,
		Scale:     UnknownScale,
		TypeName:  typeName,
	}
}

func (m SQLTypeMapping) key() TypeMappingKey {
	return TypeMappingKey{Code: m.Code, Length: m.Length}
}

// Match reports whether the mapping accepts the given column type.
func (m SQLTypeMapping) Match(code strategy.TypeCode, length, precision, scale int, nullable bool) bool {
	if code != m.Code {
		return false
	}
	if m.Length != UnknownLength && m.Length != length {
		return false
	}
	if m.Precision != UnknownPrecision && m.Precision != precision {
		return false
	}
	if m.Scale != UnknownScale && m.Scale != scale {
		return false
	}
	return m.Nullable == nil || *m.Nullable == nullable
}

// TypeMappings holds type mappings bucketed by code and length. Within a
// bucket the first matching mapping wins.
type TypeMappings struct {
	buckets map[TypeMappingKey][]SQLTypeMapping
}

func newTypeMappings() *TypeMappings {
	return &TypeMappings{buckets: make(map[TypeMappingKey][]SQLTypeMapping)}
}

// Add appends m to its bucket.
func (tm *TypeMappings) Add(m SQLTypeMapping) {
	k := m.key()
	tm.buckets[k] = append(tm.buckets[k], m)
}

// Resolve returns the target type name for the given column type. The bucket
// with the exact length is used when present, the unknown length bucket
// otherwise.
func (tm *TypeMappings) Resolve(code strategy.TypeCode, length, precision, scale int, nullable bool) (string, bool) {
	bucket, ok := tm.buckets[TypeMappingKey{Code: code, Length: length}]
	if !ok {
		bucket, ok = tm.buckets[TypeMappingKey{Code: code, Length: UnknownLength}]
	}
	if !ok {
		return "", false
	}
	return scanForMatch(bucket, code, length, precision, scale, nullable)
}

// scanForMatch walks bucket in order. A mapping of another code ends the
// scan without a result, even if a later mapping would match.
// TODO(reveng): confirm with users whether a code mismatch should skip the
// entry instead of ending the scan.
func scanForMatch(bucket []SQLTypeMapping, code strategy.TypeCode, length, precision, scale int, nullable bool) (string, bool) {
	for _, m := range bucket {
		if m.Code != code {
			return "", false
		}
		if m.Match(code, length, precision, scale, nullable) {
			return m.TypeName, true
		}
	}
	return "", false
}
