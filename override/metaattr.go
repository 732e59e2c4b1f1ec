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
	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

// TableMetaAttributes returns the meta attributes of a table: the ones set
// for the table itself, else the ones of the first matching table filter.
func (r *Repository) TableMetaAttributes(ti models.TableIdentifier) (map[string]strategy.MetaAttribute, bool) {
	if specific, ok := r.store.tableMetaAttributes.Get(ti); ok && len(specific) > 0 {
		return strategy.RealizeMetaAttributes(specific), true
	}
	if general := r.filters.GeneralAttributesFor(ti); len(general) > 0 {
		return strategy.RealizeMetaAttributes(general), true
	}
	return nil, false
}

// ColumnMetaAttributes returns the meta attributes set for a column. Filters
// do not apply to columns.
func (r *Repository) ColumnMetaAttributes(ti models.TableIdentifier, column string) (map[string]strategy.MetaAttribute, bool) {
	if specific, ok := r.store.columnMetaAttributes.Get(ColumnKey{Table: ti, Column: column}); ok && len(specific) > 0 {
		return strategy.RealizeMetaAttributes(specific), true
	}
	return nil, false
}
