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
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/cloudspannerecosystem/memefish"
	"github.com/cloudspannerecosystem/memefish/ast"
)

func NewDDLSource(fpath string) (SchemaSource, error) {
	b, err := os.ReadFile(fpath)
	if err != nil {
		return nil, err
	}

	return parseDDLSource(fpath, string(b))
}

func parseDDLSource(fpath, src string) (*ddlSource, error) {
	ddls, err := memefish.ParseDDLs(fpath, src)
	if err != nil {
		return nil, err
	}

	tables := make(map[string]*ast.CreateTable)
	for _, ddl := range ddls {
		switch val := ddl.(type) {
		case *ast.CreateTable:
			tables[nodeName(val.Name)] = val
		case *ast.CreateIndex:
			// secondary indexes carry nothing the strategy reads
		default:
			return nil, fmt.Errorf("stmt should be CreateTable or CreateIndex, but got '%s'", ddl.SQL())
		}
	}

	return &ddlSource{tables: tables}, nil
}

type ddlSource struct {
	tables map[string]*ast.CreateTable
}

// nodeName returns the unquoted name of an identifier or path node.
func nodeName(n ast.Node) string {
	return strings.ReplaceAll(n.SQL(), "`", "")
}

func (s *ddlSource) TableList() ([]*SpannerTable, error) {
	var tables []*SpannerTable
	for name, t := range s.tables {
		var parent string
		if t.Cluster != nil {
			parent = nodeName(t.Cluster.TableName)
		}

		tables = append(tables, &SpannerTable{
			TableName:       name,
			ParentTableName: parent,
		})
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].TableName < tables[j].TableName
	})

	return tables, nil
}

func (s *ddlSource) ColumnList(name string) ([]*SpannerColumn, error) {
	table, ok := s.tables[name]
	if !ok {
		return nil, nil
	}

	check := make(map[string]struct{})
	for _, pk := range table.PrimaryKeys {
		check[pk.Name.Name] = struct{}{}
	}

	var cols []*SpannerColumn
	for i, c := range table.Columns {
		_, pk := check[c.Name.Name]
		cols = append(cols, &SpannerColumn{
			FieldOrdinal: i + 1,
			ColumnName:   c.Name.Name,
			DataType:     c.Type.SQL(),
			NotNull:      c.NotNull,
			IsPrimaryKey: pk,
		})
	}

	return cols, nil
}

// IndexColumnList only knows the primary key index of a table.
func (s *ddlSource) IndexColumnList(table, index string) ([]*SpannerIndexColumn, error) {
	tbl, ok := s.tables[table]
	if !ok || index != primaryKeyIndex {
		return nil, nil
	}

	var cols []*SpannerIndexColumn
	for i, key := range tbl.PrimaryKeys {
		cols = append(cols, &SpannerIndexColumn{
			SeqNo:      i + 1,
			ColumnName: key.Name.Name,
		})
	}

	return cols, nil
}

func (s *ddlSource) ForeignKeyList(table string) ([]*SpannerForeignKey, error) {
	tbl, ok := s.tables[table]
	if !ok {
		return nil, nil
	}

	var fks []*SpannerForeignKey
	for i, tc := range tbl.TableConstraints {
		fk, ok := tc.Constraint.(*ast.ForeignKey)
		if !ok {
			continue
		}

		ref := nodeName(fk.ReferenceTable)
		name := fmt.Sprintf("FK_%s_%s_%d", table, ref, i+1)
		if tc.Name != nil {
			name = tc.Name.Name
		}

		fks = append(fks, &SpannerForeignKey{
			ConstraintName:    name,
			Columns:           identNames(fk.Columns),
			ReferencedTable:   ref,
			ReferencedColumns: identNames(fk.ReferenceColumns),
		})
	}

	return fks, nil
}

func identNames(idents []*ast.Ident) []string {
	names := make([]string, 0, len(idents))
	for _, id := range idents {
		names = append(names, id.Name)
	}
	return names
}
