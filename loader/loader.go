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
	"regexp"
	"sort"

	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

const primaryKeyIndex = "PRIMARY_KEY"

type SchemaSource interface {
	TableList() ([]*SpannerTable, error)
	ColumnList(string) ([]*SpannerColumn, error)
	IndexColumnList(string, string) ([]*SpannerIndexColumn, error)
	ForeignKeyList(string) ([]*SpannerForeignKey, error)
}

func NewTableLoader(source SchemaSource) *TableLoader {
	return &TableLoader{source: source}
}

// TableLoader reads tables from a SchemaSource into models.Table values.
type TableLoader struct {
	source SchemaSource
}

// LoadTables loads the tables matched by any of the selections, sorted by
// name. Every table is loaded when selections is empty.
func (tl *TableLoader) LoadTables(selections []strategy.SchemaSelection) ([]*models.Table, error) {
	matchers, err := compileSelections(selections)
	if err != nil {
		return nil, err
	}

	tableList, err := tl.source.TableList()
	if err != nil {
		return nil, err
	}

	var tables []*models.Table
	for _, ti := range tableList {
		if !matchAny(matchers, models.NewTableIdentifier(ti.TableName)) {
			continue
		}

		table := &models.Table{
			Name:            ti.TableName,
			ParentTableName: ti.ParentTableName,
		}

		if err := tl.loadColumns(table); err != nil {
			return nil, err
		}
		if err := tl.loadPrimaryKeys(table); err != nil {
			return nil, err
		}
		if err := tl.loadForeignKeys(table); err != nil {
			return nil, err
		}

		tables = append(tables, table)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})

	return tables, nil
}

func (tl *TableLoader) loadColumns(table *models.Table) error {
	columnList, err := tl.source.ColumnList(table.Name)
	if err != nil {
		return err
	}

	for _, c := range columnList {
		table.Columns = append(table.Columns, &models.Column{
			Ordinal:      c.FieldOrdinal,
			Name:         c.ColumnName,
			DataType:     c.DataType,
			NotNull:      c.NotNull,
			IsPrimaryKey: c.IsPrimaryKey,
			IsGenerated:  c.IsGenerated,
		})
	}

	return nil
}

// loadPrimaryKeys loads primary key columns in key order.
func (tl *TableLoader) loadPrimaryKeys(table *models.Table) error {
	indexCols, err := tl.source.IndexColumnList(table.Name, primaryKeyIndex)
	if err != nil {
		return fmt.Errorf("failed to load primary key: %v", err)
	}

	for _, ic := range indexCols {
		if _, ok := table.Column(ic.ColumnName); !ok {
			return fmt.Errorf("primary key column is not found in column list: table=%v column=%v",
				table.Name, ic.ColumnName,
			)
		}
		table.PrimaryKeyColumns = append(table.PrimaryKeyColumns, ic.ColumnName)
	}

	return nil
}

func (tl *TableLoader) loadForeignKeys(table *models.Table) error {
	fkList, err := tl.source.ForeignKeyList(table.Name)
	if err != nil {
		return fmt.Errorf("failed to load foreign keys: %v", err)
	}

	for _, fk := range fkList {
		table.ForeignKeys = append(table.ForeignKeys, &models.ForeignKey{
			Name:              fk.ConstraintName,
			Table:             table.Identifier(),
			Columns:           fk.Columns,
			ReferencedTable:   models.NewTableIdentifier(fk.ReferencedTable),
			ReferencedColumns: fk.ReferencedColumns,
		})
	}

	return nil
}

type selectionMatcher struct {
	catalog, schema, table *regexp.Regexp
}

// matches reports whether the selection covers ti. Tables of the Spanner
// default schema have an empty catalog and schema, so a selection naming a
// catalog or schema only applies when its pattern matches the empty string.
func (m selectionMatcher) matches(ti models.TableIdentifier) bool {
	return m.catalog.MatchString(ti.Catalog) &&
		m.schema.MatchString(ti.Schema) &&
		m.table.MatchString(ti.Name)
}

func compileSelections(selections []strategy.SchemaSelection) ([]selectionMatcher, error) {
	var res []selectionMatcher
	for _, sel := range selections {
		var m selectionMatcher
		for _, p := range []struct {
			pattern string
			re      **regexp.Regexp
		}{
			{sel.MatchCatalog, &m.catalog},
			{sel.MatchSchema, &m.schema},
			{sel.MatchTable, &m.table},
		} {
			re, err := compilePattern(p.pattern)
			if err != nil {
				return nil, fmt.Errorf("invalid schema selection %q: %w", p.pattern, err)
			}
			*p.re = re
		}
		res = append(res, m)
	}
	return res, nil
}

func compilePattern(p string) (*regexp.Regexp, error) {
	if p == "" {
		p = ".*"
	}
	return regexp.Compile("^(?:" + p + ")$")
}

func matchAny(matchers []selectionMatcher, ti models.TableIdentifier) bool {
	if len(matchers) == 0 {
		return true
	}
	for _, m := range matchers {
		if m.matches(ti) {
			return true
		}
	}
	return false
}
