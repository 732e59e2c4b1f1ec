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

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const testDDL = `
CREATE TABLE Customers (
  CustomerId INT64 NOT NULL,
  Name STRING(32) NOT NULL,
  Email STRING(64),
) PRIMARY KEY(CustomerId);

CREATE TABLE Orders (
  CustomerId INT64 NOT NULL,
  OrderId INT64 NOT NULL,
  CONSTRAINT FK_Orders_Customers FOREIGN KEY (CustomerId) REFERENCES Customers (CustomerId)
) PRIMARY KEY(CustomerId, OrderId),
INTERLEAVE IN PARENT Customers;

CREATE INDEX OrdersByOrderId ON Orders(OrderId);
`

func TestDDLSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	if err := os.WriteFile(path, []byte(testDDL), 0o644); err != nil {
		t.Fatalf("failed to write schema: %v", err)
	}

	source, err := NewDDLSource(path)
	if err != nil {
		t.Fatalf("failed to create source: %v", err)
	}

	tables, err := source.TableList()
	if err != nil {
		t.Fatalf("TableList: %v", err)
	}
	expectedTables := []*SpannerTable{
		{TableName: "Customers"},
		{TableName: "Orders", ParentTableName: "Customers"},
	}
	if diff := cmp.Diff(expectedTables, tables); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	columns, err := source.ColumnList("Customers")
	if err != nil {
		t.Fatalf("ColumnList: %v", err)
	}
	expectedColumns := []*SpannerColumn{
		{FieldOrdinal: 1, ColumnName: "CustomerId", DataType: "INT64", NotNull: true, IsPrimaryKey: true},
		{FieldOrdinal: 2, ColumnName: "Name", DataType: "STRING(32)", NotNull: true},
		{FieldOrdinal: 3, ColumnName: "Email", DataType: "STRING(64)"},
	}
	if diff := cmp.Diff(expectedColumns, columns); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	pk, err := source.IndexColumnList("Orders", primaryKeyIndex)
	if err != nil {
		t.Fatalf("IndexColumnList: %v", err)
	}
	expectedPK := []*SpannerIndexColumn{
		{SeqNo: 1, ColumnName: "CustomerId"},
		{SeqNo: 2, ColumnName: "OrderId"},
	}
	if diff := cmp.Diff(expectedPK, pk); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	fks, err := source.ForeignKeyList("Orders")
	if err != nil {
		t.Fatalf("ForeignKeyList: %v", err)
	}
	expectedFKs := []*SpannerForeignKey{
		{
			ConstraintName:    "FK_Orders_Customers",
			Columns:           []string{"CustomerId"},
			ReferencedTable:   "Customers",
			ReferencedColumns: []string{"CustomerId"},
		},
	}
	if diff := cmp.Diff(expectedFKs, fks); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestDDLSource_UnsupportedStatement(t *testing.T) {
	_, err := parseDDLSource("schema.sql", "DROP TABLE Customers")
	if err == nil {
		t.Fatal("expected an error for DROP TABLE")
	}
}

func TestDDLSource_UnknownTable(t *testing.T) {
	source, err := parseDDLSource("schema.sql", testDDL)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	cols, err := source.ColumnList("Unknown")
	if err != nil {
		t.Fatalf("ColumnList: %v", err)
	}
	if len(cols) != 0 {
		t.Errorf("expected no columns, got %d", len(cols))
	}
}
