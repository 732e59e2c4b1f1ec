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
	"testing"

	"cloud.google.com/go/spanner/apiv1/spannerpb"
	"github.com/google/go-cmp/cmp"
)

func TestParseSQLType(t *testing.T) {
	table := []struct {
		dataType string
		nullable bool
		expected SQLType
	}{
		{"STRING(32)", false, SQLType{Code: spannerpb.TypeCode_STRING, Length: 32}},
		{"STRING(MAX)", true, SQLType{Code: spannerpb.TypeCode_STRING, Length: NoLength, Nullable: true}},
		{"BYTES(256)", false, SQLType{Code: spannerpb.TypeCode_BYTES, Length: 256}},
		{"INT64", false, SQLType{Code: spannerpb.TypeCode_INT64, Length: NoLength}},
		{"BOOL", true, SQLType{Code: spannerpb.TypeCode_BOOL, Length: NoLength, Nullable: true}},
		{"TIMESTAMP", false, SQLType{Code: spannerpb.TypeCode_TIMESTAMP, Length: NoLength}},
		{"NUMERIC", false, SQLType{Code: spannerpb.TypeCode_NUMERIC, Length: NoLength, Precision: 38, Scale: 9}},
		{"JSON", true, SQLType{Code: spannerpb.TypeCode_JSON, Length: NoLength, Nullable: true}},
		{"ARRAY<STRING(32)>", false, SQLType{Code: spannerpb.TypeCode_ARRAY, Length: NoLength}},
	}

	for _, tc := range table {
		t.Run(tc.dataType, func(t *testing.T) {
			got, err := ParseSQLType(tc.dataType, tc.nullable)
			if err != nil {
				t.Fatalf("ParseSQLType: %v", err)
			}
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("(-want, +got)\n%s", diff)
			}
		})
	}
}

func TestParseSQLType_Unknown(t *testing.T) {
	for _, dt := range []string{"VARCHAR(32)", "TYPE_CODE_UNSPECIFIED", ""} {
		if _, err := ParseSQLType(dt, false); err == nil {
			t.Errorf("ParseSQLType(%q): expected an error", dt)
		}
	}
}

func TestParseTypeCode(t *testing.T) {
	code, err := ParseTypeCode(" string ")
	if err != nil {
		t.Fatalf("ParseTypeCode: %v", err)
	}
	if code != spannerpb.TypeCode_STRING {
		t.Errorf("expected STRING, got %v", code)
	}
}
