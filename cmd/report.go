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

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

type reporter struct {
	s       strategy.Strategy
	tw      *tabwriter.Writer
	columns bool
}

// writeReport writes the decisions s makes for every table to w.
func writeReport(w io.Writer, s strategy.Strategy, tables []*models.Table, columns bool) error {
	rp := &reporter{
		s:       s,
		tw:      tabwriter.NewWriter(w, 0, 8, 2, ' ', 0),
		columns: columns,
	}
	fmt.Fprintln(rp.tw, "TABLE\tITEM\tDECISION")

	referencedBy := make(map[models.TableIdentifier][]*models.ForeignKey)
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			referencedBy[fk.ReferencedTable] = append(referencedBy[fk.ReferencedTable], fk)
		}
	}

	for _, t := range tables {
		if err := rp.table(t, referencedBy[t.Identifier()]); err != nil {
			return fmt.Errorf("table %s: %w", t.Identifier(), err)
		}
	}

	return rp.tw.Flush()
}

func (rp *reporter) row(ti models.TableIdentifier, item, decision string) {
	fmt.Fprintf(rp.tw, "%s\t%s\t%s\n", ti, item, decision)
}

func (rp *reporter) table(t *models.Table, incoming []*models.ForeignKey) error {
	ti := t.Identifier()

	excluded, err := rp.s.ExcludeTable(ti)
	if err != nil {
		return err
	}
	if excluded {
		rp.row(ti, "excluded", "true")
		return nil
	}

	className, err := rp.s.TableToClassName(ti)
	if err != nil {
		return err
	}
	rp.row(ti, "class", className)

	if err := rp.identifier(t); err != nil {
		return err
	}

	meta, err := rp.s.TableToMetaAttributes(ti)
	if err != nil {
		return err
	}
	rp.meta(ti, "meta", meta)

	if rp.columns {
		for _, c := range t.Columns {
			if err := rp.column(ti, c); err != nil {
				return err
			}
		}
	}

	for _, fk := range t.ForeignKeys {
		if err := rp.manyToOne(fk, uniqueReference(t.ForeignKeys, fk)); err != nil {
			return err
		}
	}

	declared, err := rp.s.ForeignKeys(ti)
	if err != nil {
		return err
	}
	incoming = mergeForeignKeys(incoming, declared)
	for _, fk := range incoming {
		if err := rp.collection(fk, uniqueReference(incoming, fk)); err != nil {
			return err
		}
	}

	return nil
}

func (rp *reporter) identifier(t *models.Table) error {
	ti := t.Identifier()

	pk, err := rp.s.PrimaryKeyColumnNames(ti)
	if err != nil {
		return err
	}
	if len(pk) == 0 {
		pk = t.PrimaryKeyColumns
	}
	rp.row(ti, "primary key", strings.Join(pk, ", "))

	gen, err := rp.s.TableIdentifierStrategyName(ti)
	if err != nil {
		return err
	}
	params, err := rp.s.TableIdentifierProperties(ti)
	if err != nil {
		return err
	}
	rp.row(ti, "generator", gen+formatParams(params))

	if len(pk) > 1 {
		name, err := rp.s.TableToCompositeIDName(ti)
		if err != nil {
			return err
		}
		rp.row(ti, "composite id", name)
		return nil
	}

	name, err := rp.s.TableToIdentifierPropertyName(ti)
	if err != nil {
		return err
	}
	rp.row(ti, "identifier", name)
	return nil
}

func (rp *reporter) column(ti models.TableIdentifier, c *models.Column) error {
	item := "column " + c.Name

	excluded, err := rp.s.ExcludeColumn(ti, c.Name)
	if err != nil {
		return err
	}
	if excluded {
		rp.row(ti, item, "excluded")
		return nil
	}

	prop, err := rp.s.ColumnToPropertyName(ti, c.Name)
	if err != nil {
		return err
	}
	typ, err := strategy.ParseSQLType(c.DataType, !c.NotNull)
	if err != nil {
		return err
	}
	typeName, err := rp.s.ColumnToTypeName(ti, c.Name, typ)
	if err != nil {
		return err
	}
	rp.row(ti, item, prop+" "+typeName)

	meta, err := rp.s.ColumnToMetaAttributes(ti, c.Name)
	if err != nil {
		return err
	}
	rp.meta(ti, item+" meta", meta)
	return nil
}

func (rp *reporter) manyToOne(fk *models.ForeignKey, unique bool) error {
	item := "many-to-one " + fk.Name

	excluded, err := rp.s.ExcludeForeignKeyAsManyToOne(fk)
	if err != nil {
		return err
	}
	if excluded {
		rp.row(fk.Table, item, "excluded")
		return nil
	}

	name, err := rp.s.ForeignKeyToEntityName(fk, unique)
	if err != nil {
		return err
	}
	info, err := rp.s.ForeignKeyToAssociationInfo(fk)
	if err != nil {
		return err
	}
	rp.row(fk.Table, item, name+formatAssociation(info))
	return nil
}

func (rp *reporter) collection(fk *models.ForeignKey, unique bool) error {
	item := "collection " + fk.Name

	excluded, err := rp.s.ExcludeForeignKeyAsCollection(fk)
	if err != nil {
		return err
	}
	if excluded {
		rp.row(fk.ReferencedTable, item, "excluded")
		return nil
	}

	name, err := rp.s.ForeignKeyToCollectionName(fk, unique)
	if err != nil {
		return err
	}
	info, err := rp.s.ForeignKeyToInverseAssociationInfo(fk)
	if err != nil {
		return err
	}
	rp.row(fk.ReferencedTable, item, name+formatAssociation(info))
	return nil
}

func (rp *reporter) meta(ti models.TableIdentifier, item string, attrs map[string]strategy.MetaAttribute) {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rp.row(ti, item, name+"="+attrs[name].Value())
	}
}

// mergeForeignKeys appends the keys of declared not already in fks.
func mergeForeignKeys(fks, declared []*models.ForeignKey) []*models.ForeignKey {
	seen := make(map[string]struct{}, len(fks))
	for _, fk := range fks {
		seen[fk.Name] = struct{}{}
	}

	res := fks[:len(fks):len(fks)]
	for _, fk := range declared {
		if _, ok := seen[fk.Name]; !ok {
			res = append(res, fk)
		}
	}
	return res
}

// uniqueReference reports whether fk is the only key in fks between its two tables.
func uniqueReference(fks []*models.ForeignKey, fk *models.ForeignKey) bool {
	n := 0
	for _, other := range fks {
		if other.Table == fk.Table && other.ReferencedTable == fk.ReferencedTable {
			n++
		}
	}
	return n <= 1
}

func formatParams(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(params))
	for k, v := range params {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return " (" + strings.Join(pairs, ", ") + ")"
}

func formatAssociation(info *strategy.AssociationInfo) string {
	if info == nil {
		return ""
	}

	var parts []string
	if info.Cascade != "" {
		parts = append(parts, "cascade="+info.Cascade)
	}
	if info.Fetch != "" {
		parts = append(parts, "fetch="+info.Fetch)
	}
	if info.Update != nil {
		parts = append(parts, fmt.Sprintf("update=%t", *info.Update))
	}
	if info.Insert != nil {
		parts = append(parts, fmt.Sprintf("insert=%t", *info.Insert))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, " ") + "]"
}
