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

package models

import "strings"

// TableIdentifier identifies a table. Empty fields are part of the identity, so
// {"", "", "Users"} and {"", "public", "Users"} are different tables.
type TableIdentifier struct {
	Catalog string
	Schema  string
	Name    string
}

// NewTableIdentifier returns an identifier for a table without catalog and schema.
func NewTableIdentifier(name string) TableIdentifier {
	return TableIdentifier{Name: name}
}

// String returns the dot separated qualified name, skipping empty parts.
func (ti TableIdentifier) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{ti.Catalog, ti.Schema, ti.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ".")
}

// Table represents a table read from a schema.
type Table struct {
	Catalog           string
	Schema            string
	Name              string // table_name
	ParentTableName   string // interleaved parent, if any
	Columns           []*Column
	PrimaryKeyColumns []string
	ForeignKeys       []*ForeignKey
}

// Identifier returns the identifier of the table.
func (t *Table) Identifier() TableIdentifier {
	return TableIdentifier{Catalog: t.Catalog, Schema: t.Schema, Name: t.Name}
}

// Column finds a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Column represents column info.
type Column struct {
	Ordinal      int    // ordinal_position
	Name         string // column_name
	DataType     string // spanner_type, e.g. STRING(32)
	NotNull      bool   // not_null
	IsPrimaryKey bool   // is_primary_key
	IsGenerated  bool   // is_generated
}

// ForeignKey represents a foreign key constraint from Table to ReferencedTable.
type ForeignKey struct {
	Name              string // constraint_name
	Table             TableIdentifier
	Columns           []string
	ReferencedTable   TableIdentifier
	ReferencedColumns []string
}
