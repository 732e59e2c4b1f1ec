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

// Package override overlays user declared overrides onto a baseline
// strategy.Strategy.
//
// A Repository is filled during a single configuration phase, either from
// override documents (AddFile, AddResource, AddReader) or through the Set and
// Add methods, and is only read afterwards through the strategy returned by
// Strategy. It does no locking: all writes must happen before the first read.
package override

import (
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

// Repository holds the overrides.
type Repository struct {
	store        *Store
	typeMappings *TypeMappings
	filters      FilterChain

	logger    zerolog.Logger
	resources []fs.FS
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Repository) {
		r.logger = logger
	}
}

// WithResourceFS sets the file systems AddResource searches, in order. The
// default is the current directory.
func WithResourceFS(fsys ...fs.FS) Option {
	return func(r *Repository) {
		r.resources = fsys
	}
}

// New returns an empty Repository.
func New(opts ...Option) *Repository {
	r := &Repository{
		store:        newStore(),
		typeMappings: newTypeMappings(),
		logger:       zerolog.Nop(),
		resources:    []fs.FS{os.DirFS(".")},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddTypeMapping appends m to the bucket of its code and length.
func (r *Repository) AddTypeMapping(m SQLTypeMapping) {
	r.typeMappings.Add(m)
}

// AddTableFilter appends f to the filter chain.
func (r *Repository) AddTableFilter(f *TableFilter) error {
	if !f.compiled() {
		if err := f.compile(); err != nil {
			return err
		}
	}
	r.filters = append(r.filters, f)
	return nil
}

func (r *Repository) SetTypeForColumn(ti models.TableIdentifier, column, typeName string) {
	r.store.typeForColumn.Set(ColumnKey{Table: ti, Column: column}, typeName)
}

func (r *Repository) SetExcludedColumn(ti models.TableIdentifier, column string) {
	r.store.excludedColumns.Add(ColumnKey{Table: ti, Column: column})
}

func (r *Repository) SetPropertyForColumn(ti models.TableIdentifier, column, property string) {
	r.store.propertyNameForColumn.Set(ColumnKey{Table: ti, Column: column}, property)
}

// SetIdentifierStrategyForTable records the identifier strategy of a table
// and its parameters. Nothing is recorded when strategyName is empty.
func (r *Repository) SetIdentifierStrategyForTable(ti models.TableIdentifier, strategyName string, params map[string]string) {
	if !r.store.identifierStrategyForTable.Set(ti, strategyName) {
		return
	}
	r.store.identifierPropsForTable.Set(ti, params)
}

// SetPrimaryKeyInfoForTable records the primary key columns, the identifier
// property name and the composite id name of a table. Empty arguments are
// ignored.
func (r *Repository) SetPrimaryKeyInfoForTable(ti models.TableIdentifier, columns []string, propertyName, compositeIDName string) {
	r.store.primaryKeyColumnsForTable.Set(ti, columns)
	r.store.propertyNameForPrimaryKey.Set(ti, propertyName)
	r.store.compositeIDNameForTable.Set(ti, compositeIDName)
}

func (r *Repository) AddSchemaSelection(sel strategy.SchemaSelection) {
	r.store.schemaSelections = append(r.store.schemaSelections, sel)
}

// RecordForeignKeyInfo records the overrides of the foreign key
// constraintName. Only the non zero fields of info are written; fields
// recorded by earlier calls are kept.
func (r *Repository) RecordForeignKeyInfo(constraintName string, info ForeignKeyInfo) {
	r.store.recordForeignKeyInfo(constraintName, info)
}

func (r *Repository) SetTableMetaAttributes(ti models.TableIdentifier, attrs map[string][]string) {
	r.store.tableMetaAttributes.Set(ti, attrs)
}

func (r *Repository) SetColumnMetaAttributes(ti models.TableIdentifier, column string, attrs map[string][]string) {
	r.store.columnMetaAttributes.Set(ColumnKey{Table: ti, Column: column}, attrs)
}

// RegisterTable indexes the foreign keys of table by the table they
// reference and records className as the class name of the table when it is
// not empty.
func (r *Repository) RegisterTable(table *models.Table, className string) {
	r.store.registerTable(table, className)
}
