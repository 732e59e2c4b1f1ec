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

package strategy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cloud.google.com/go/spanner/apiv1/spannerpb"
)

// TypeCode is the source type code of a column.
type TypeCode = spannerpb.TypeCode

const (
	// NoLength is the length of columns declared without a length or with MAX.
	NoLength = -1

	numericPrecision = 38
	numericScale     = 9
)

// SQLType describes the source type of a column.
type SQLType struct {
	Code                TypeCode
	Length              int
	Precision           int
	Scale               int
	Nullable            bool
	GeneratedIdentifier bool
}

func (t SQLType) String() string {
	return fmt.Sprintf("t:%s l:%d p:%d s:%d n:%t id:%t",
		t.Code, t.Length, t.Precision, t.Scale, t.Nullable, t.GeneratedIdentifier)
}

var lengthRegexp = regexp.MustCompile(`\(([0-9]+|MAX)\)$`)

// ParseTypeCode looks up the type code for a type name such as STRING or
// INT64.
func ParseTypeCode(name string) (TypeCode, error) {
	v, ok := spannerpb.TypeCode_value[strings.ToUpper(strings.TrimSpace(name))]
	if !ok || v == int32(spannerpb.TypeCode_TYPE_CODE_UNSPECIFIED) {
		return spannerpb.TypeCode_TYPE_CODE_UNSPECIFIED, fmt.Errorf("unknown sql type %q", name)
	}
	return TypeCode(v), nil
}

// ParseSQLType parses a Spanner data type such as STRING(32) or
// ARRAY<INT64>.
func ParseSQLType(dt string, nullable bool) (SQLType, error) {
	t := SQLType{Length: NoLength, Nullable: nullable}

	if strings.HasPrefix(dt, "ARRAY<") {
		t.Code = spannerpb.TypeCode_ARRAY
		return t, nil
	}

	// separate type and length from dt with length such as STRING(32) or BYTES(256)
	if m := lengthRegexp.FindStringSubmatchIndex(dt); m != nil {
		if lengthStr := dt[m[2]:m[3]]; lengthStr != "MAX" {
			l, err := strconv.Atoi(lengthStr)
			if err != nil {
				return SQLType{}, fmt.Errorf("could not convert length of %s: %w", dt, err)
			}
			t.Length = l
		}

		// trim length from dt
		dt = dt[:m[0]] + dt[m[1]:]
	}

	code, err := ParseTypeCode(dt)
	if err != nil {
		return SQLType{}, err
	}
	t.Code = code
	if code == spannerpb.TypeCode_NUMERIC {
		t.Precision, t.Scale = numericPrecision, numericScale
	}

	return t, nil
}
