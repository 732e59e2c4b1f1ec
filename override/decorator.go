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
	"strings"

	"go.mercari.io/reveng/internal"
	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

var _ strategy.Strategy = (*Decorator)(nil)

// Decorator answers every query from the overrides of a Repository and
// delegates to the baseline strategy when there is none. It never writes to
// the repository.
type Decorator struct {
	repo     *Repository
	baseline strategy.Strategy
}

// Strategy returns the overrides composed over baseline. baseline may be nil,
// in which case queries without an override fail with a DelegationError.
func (r *Repository) Strategy(baseline strategy.Strategy) *Decorator {
	return &Decorator{repo: r, baseline: baseline}
}

func (d *Decorator) delegate(capability string) (strategy.Strategy, error) {
	if d.baseline == nil {
		return nil, &DelegationError{Capability: capability}
	}
	return d.baseline, nil
}

// ExcludeTable is decided by the table filters alone.
func (d *Decorator) ExcludeTable(ti models.TableIdentifier) (bool, error) {
	return d.repo.filters.IsExcluded(ti), nil
}

func (d *Decorator) ExcludeColumn(ti models.TableIdentifier, column string) (bool, error) {
	if d.repo.store.excludedColumns.Contains(ColumnKey{Table: ti, Column: column}) {
		return true, nil
	}
	base, err := d.delegate("ExcludeColumn")
	if err != nil {
		return false, err
	}
	return base.ExcludeColumn(ti, column)
}

// TableToClassName returns the overridden class name of a table, qualified
// with the package of the table filters unless it already is qualified. Without
// override, the baseline class name is moved into the filter package.
func (d *Decorator) TableToClassName(ti models.TableIdentifier) (string, error) {
	pkg, hasPkg := d.repo.filters.PackageFor(ti)

	if className, ok := d.repo.store.tableToClassName.Get(ti); ok {
		if strings.Contains(className, ".") || !hasPkg {
			return className, nil
		}
		return internal.Qualify(pkg, className), nil
	}

	base, err := d.delegate("TableToClassName")
	if err != nil {
		return "", err
	}
	className, err := base.TableToClassName(ti)
	if err != nil || !hasPkg || className == "" {
		return className, err
	}
	return internal.Qualify(pkg, internal.Unqualify(className)), nil
}

func (d *Decorator) ColumnToPropertyName(ti models.TableIdentifier, column string) (string, error) {
	if property, ok := d.repo.store.propertyNameForColumn.Get(ColumnKey{Table: ti, Column: column}); ok {
		return property, nil
	}
	base, err := d.delegate("ColumnToPropertyName")
	if err != nil {
		return "", err
	}
	return base.ColumnToPropertyName(ti, column)
}

// ColumnToTypeName prefers a type set for the column, then the type mappings.
func (d *Decorator) ColumnToTypeName(ti models.TableIdentifier, column string, typ strategy.SQLType) (string, error) {
	key := ColumnKey{Table: ti, Column: column}
	if column != "" {
		if typeName, ok := d.repo.store.typeForColumn.Get(key); ok {
			d.repo.logger.Debug().Stringer("column", key).Str("type", typeName).Msg("explicit column mapping found")
			return typeName, nil
		}
	}

	if typeName, ok := d.repo.typeMappings.Resolve(typ.Code, typ.Length, typ.Precision, typ.Scale, typ.Nullable); ok {
		d.repo.logger.Debug().Stringer("column", key).Stringer("sql_type", typ).Str("type", typeName).Msg("type mapping found")
		return typeName, nil
	}

	base, err := d.delegate("ColumnToTypeName")
	if err != nil {
		return "", err
	}
	return base.ColumnToTypeName(ti, column, typ)
}

func (d *Decorator) TableToIdentifierPropertyName(ti models.TableIdentifier) (string, error) {
	if property, ok := d.repo.store.propertyNameForPrimaryKey.Get(ti); ok {
		return property, nil
	}
	base, err := d.delegate("TableToIdentifierPropertyName")
	if err != nil {
		return "", err
	}
	return base.TableToIdentifierPropertyName(ti)
}

func (d *Decorator) TableToCompositeIDName(ti models.TableIdentifier) (string, error) {
	if name, ok := d.repo.store.compositeIDNameForTable.Get(ti); ok {
		return name, nil
	}
	base, err := d.delegate("TableToCompositeIDName")
	if err != nil {
		return "", err
	}
	return base.TableToCompositeIDName(ti)
}

func (d *Decorator) TableIdentifierStrategyName(ti models.TableIdentifier) (string, error) {
	if name, ok := d.repo.store.identifierStrategyForTable.Get(ti); ok {
		d.repo.logger.Debug().Stringer("table", ti).Str("strategy", name).Msg("identifier strategy found")
		return name, nil
	}
	base, err := d.delegate("TableIdentifierStrategyName")
	if err != nil {
		return "", err
	}
	return base.TableIdentifierStrategyName(ti)
}

func (d *Decorator) TableIdentifierProperties(ti models.TableIdentifier) (map[string]string, error) {
	if props, ok := d.repo.store.identifierPropsForTable.Get(ti); ok {
		return props, nil
	}
	base, err := d.delegate("TableIdentifierProperties")
	if err != nil {
		return nil, err
	}
	return base.TableIdentifierProperties(ti)
}

func (d *Decorator) PrimaryKeyColumnNames(ti models.TableIdentifier) ([]string, error) {
	if columns, ok := d.repo.store.primaryKeyColumnsForTable.Get(ti); ok {
		return columns, nil
	}
	base, err := d.delegate("PrimaryKeyColumnNames")
	if err != nil {
		return nil, err
	}
	return base.PrimaryKeyColumnNames(ti)
}

// ForeignKeys returns the foreign keys of the registered tables referencing
// the given table.
func (d *Decorator) ForeignKeys(referenced models.TableIdentifier) ([]*models.ForeignKey, error) {
	if fks := d.repo.store.foreignKeys[referenced]; len(fks) > 0 {
		return fks, nil
	}
	base, err := d.delegate("ForeignKeys")
	if err != nil {
		return nil, err
	}
	return base.ForeignKeys(referenced)
}

func (d *Decorator) ForeignKeyToEntityName(fk *models.ForeignKey, uniqueReference bool) (string, error) {
	if property, ok := d.repo.store.foreignKeyToOneName.Get(fk.Name); ok {
		return property, nil
	}
	base, err := d.delegate("ForeignKeyToEntityName")
	if err != nil {
		return "", err
	}
	return base.ForeignKeyToEntityName(fk, uniqueReference)
}

func (d *Decorator) ForeignKeyToInverseEntityName(fk *models.ForeignKey, uniqueReference bool) (string, error) {
	if property, ok := d.repo.store.foreignKeyToInverseName.Get(fk.Name); ok {
		return property, nil
	}
	base, err := d.delegate("ForeignKeyToInverseEntityName")
	if err != nil {
		return "", err
	}
	return base.ForeignKeyToInverseEntityName(fk, uniqueReference)
}

// ForeignKeyToCollectionName uses the inverse property name of the foreign
// key.
func (d *Decorator) ForeignKeyToCollectionName(fk *models.ForeignKey, uniqueReference bool) (string, error) {
	if property, ok := d.repo.store.foreignKeyToInverseName.Get(fk.Name); ok {
		return property, nil
	}
	base, err := d.delegate("ForeignKeyToCollectionName")
	if err != nil {
		return "", err
	}
	return base.ForeignKeyToCollectionName(fk, uniqueReference)
}

func (d *Decorator) ExcludeForeignKeyAsCollection(fk *models.ForeignKey) (bool, error) {
	if exclude, ok := d.repo.store.foreignKeyInverseExclude.Get(fk.Name); ok {
		return *exclude, nil
	}
	base, err := d.delegate("ExcludeForeignKeyAsCollection")
	if err != nil {
		return false, err
	}
	return base.ExcludeForeignKeyAsCollection(fk)
}

func (d *Decorator) ExcludeForeignKeyAsManyToOne(fk *models.ForeignKey) (bool, error) {
	if exclude, ok := d.repo.store.foreignKeyToOneExclude.Get(fk.Name); ok {
		return *exclude, nil
	}
	base, err := d.delegate("ExcludeForeignKeyAsManyToOne")
	if err != nil {
		return false, err
	}
	return base.ExcludeForeignKeyAsManyToOne(fk)
}

func (d *Decorator) ForeignKeyToAssociationInfo(fk *models.ForeignKey) (*strategy.AssociationInfo, error) {
	if info, ok := d.repo.store.foreignKeyToEntityInfo.Get(fk.Name); ok {
		return info, nil
	}
	base, err := d.delegate("ForeignKeyToAssociationInfo")
	if err != nil {
		return nil, err
	}
	return base.ForeignKeyToAssociationInfo(fk)
}

func (d *Decorator) ForeignKeyToInverseAssociationInfo(fk *models.ForeignKey) (*strategy.AssociationInfo, error) {
	if info, ok := d.repo.store.foreignKeyToInverseInfo.Get(fk.Name); ok {
		return info, nil
	}
	base, err := d.delegate("ForeignKeyToInverseAssociationInfo")
	if err != nil {
		return nil, err
	}
	return base.ForeignKeyToInverseAssociationInfo(fk)
}

func (d *Decorator) SchemaSelections() ([]strategy.SchemaSelection, error) {
	if sels := d.repo.store.schemaSelections; len(sels) > 0 {
		return sels, nil
	}
	base, err := d.delegate("SchemaSelections")
	if err != nil {
		return nil, err
	}
	return base.SchemaSelections()
}

func (d *Decorator) TableToMetaAttributes(ti models.TableIdentifier) (map[string]strategy.MetaAttribute, error) {
	if attrs, ok := d.repo.TableMetaAttributes(ti); ok {
		return attrs, nil
	}
	base, err := d.delegate("TableToMetaAttributes")
	if err != nil {
		return nil, err
	}
	return base.TableToMetaAttributes(ti)
}

func (d *Decorator) ColumnToMetaAttributes(ti models.TableIdentifier, column string) (map[string]strategy.MetaAttribute, error) {
	if attrs, ok := d.repo.ColumnMetaAttributes(ti, column); ok {
		return attrs, nil
	}
	base, err := d.delegate("ColumnToMetaAttributes")
	if err != nil {
		return nil, err
	}
	return base.ColumnToMetaAttributes(ti, column)
}
