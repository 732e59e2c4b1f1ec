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
	"cloud.google.com/go/spanner/apiv1/spannerpb"
	"go.mercari.io/reveng/internal"
	"go.mercari.io/reveng/models"
)

const (
	// DefaultIdentifierStrategy is the identifier strategy of every table
	// unless overridden. Spanner keys are always assigned by the application.
	DefaultIdentifierStrategy = "assigned"

	defaultIdentifierProperty = "id"
)

var _ Strategy = (*DefaultStrategy)(nil)

// DefaultStrategy is the baseline Strategy. Names are derived from table and
// column names with the inflector, Go types from the Spanner type.
type DefaultStrategy struct {
	inflector internal.Inflector
}

func NewDefaultStrategy(inflector internal.Inflector) *DefaultStrategy {
	return &DefaultStrategy{inflector: inflector}
}

func (s *DefaultStrategy) ExcludeTable(models.TableIdentifier) (bool, error) {
	return false, nil
}

func (s *DefaultStrategy) ExcludeColumn(models.TableIdentifier, string) (bool, error) {
	return false, nil
}

// TableToClassName singularizes the table name, e.g. user_accounts -> UserAccount.
func (s *DefaultStrategy) TableToClassName(ti models.TableIdentifier) (string, error) {
	return internal.SingularizeIdentifier(s.inflector, ti.Name), nil
}

// ColumnToPropertyName converts the column name to lowerCamelCase.
func (s *DefaultStrategy) ColumnToPropertyName(_ models.TableIdentifier, column string) (string, error) {
	return internal.SnakeToLowerCamel(column), nil
}

// ColumnToTypeName returns the Go type used for a column of the given type.
func (s *DefaultStrategy) ColumnToTypeName(_ models.TableIdentifier, _ string, typ SQLType) (string, error) {
	return goType(typ), nil
}

func (s *DefaultStrategy) TableToIdentifierPropertyName(models.TableIdentifier) (string, error) {
	return defaultIdentifierProperty, nil
}

func (s *DefaultStrategy) TableToCompositeIDName(ti models.TableIdentifier) (string, error) {
	return internal.SingularizeIdentifier(s.inflector, ti.Name) + "ID", nil
}

func (s *DefaultStrategy) TableIdentifierStrategyName(models.TableIdentifier) (string, error) {
	return DefaultIdentifierStrategy, nil
}

func (s *DefaultStrategy) TableIdentifierProperties(models.TableIdentifier) (map[string]string, error) {
	return nil, nil
}

func (s *DefaultStrategy) PrimaryKeyColumnNames(models.TableIdentifier) ([]string, error) {
	return nil, nil
}

func (s *DefaultStrategy) ForeignKeys(models.TableIdentifier) ([]*models.ForeignKey, error) {
	return nil, nil
}

// ForeignKeyToEntityName names the owning side after the referenced table,
// e.g. Customers -> customer.
func (s *DefaultStrategy) ForeignKeyToEntityName(fk *models.ForeignKey, _ bool) (string, error) {
	return internal.SingularizeLowerIdentifier(s.inflector, fk.ReferencedTable.Name), nil
}

// ForeignKeyToInverseEntityName names the inverse side of a one to one
// association after the owning table.
func (s *DefaultStrategy) ForeignKeyToInverseEntityName(fk *models.ForeignKey, _ bool) (string, error) {
	return internal.SingularizeLowerIdentifier(s.inflector, fk.Table.Name), nil
}

// ForeignKeyToCollectionName names the collection after the owning table,
// e.g. OrderItems -> orderItems.
func (s *DefaultStrategy) ForeignKeyToCollectionName(fk *models.ForeignKey, uniqueReference bool) (string, error) {
	if uniqueReference {
		return internal.PluralizeIdentifier(s.inflector, fk.Table.Name), nil
	}
	// several foreign keys point at the same table; keep them apart
	return internal.PluralizeIdentifier(s.inflector, fk.Table.Name) + "By" + internal.SnakeToCamel(fk.Name), nil
}

func (s *DefaultStrategy) ExcludeForeignKeyAsCollection(*models.ForeignKey) (bool, error) {
	return false, nil
}

func (s *DefaultStrategy) ExcludeForeignKeyAsManyToOne(*models.ForeignKey) (bool, error) {
	return false, nil
}

func (s *DefaultStrategy) ForeignKeyToAssociationInfo(*models.ForeignKey) (*AssociationInfo, error) {
	return nil, nil
}

func (s *DefaultStrategy) ForeignKeyToInverseAssociationInfo(*models.ForeignKey) (*AssociationInfo, error) {
	return nil, nil
}

// SchemaSelections selects every table.
func (s *DefaultStrategy) SchemaSelections() ([]SchemaSelection, error) {
	return []SchemaSelection{{}}, nil
}

func (s *DefaultStrategy) TableToMetaAttributes(models.TableIdentifier) (map[string]MetaAttribute, error) {
	return nil, nil
}

func (s *DefaultStrategy) ColumnToMetaAttributes(models.TableIdentifier, string) (map[string]MetaAttribute, error) {
	return nil, nil
}

func goType(typ SQLType) string {
	nullable := typ.Nullable
	switch typ.Code {
	case spannerpb.TypeCode_BOOL:
		if nullable {
			return "spanner.NullBool"
		}
		return "bool"
	case spannerpb.TypeCode_STRING:
		if nullable {
			return "spanner.NullString"
		}
		return "string"
	case spannerpb.TypeCode_INT64:
		if nullable {
			return "spanner.NullInt64"
		}
		return "int64"
	case spannerpb.TypeCode_FLOAT64:
		if nullable {
			return "spanner.NullFloat64"
		}
		return "float64"
	case spannerpb.TypeCode_FLOAT32:
		if nullable {
			return "spanner.NullFloat32"
		}
		return "float32"
	case spannerpb.TypeCode_BYTES:
		return "[]byte"
	case spannerpb.TypeCode_TIMESTAMP:
		if nullable {
			return "spanner.NullTime"
		}
		return "time.Time"
	case spannerpb.TypeCode_DATE:
		if nullable {
			return "spanner.NullDate"
		}
		return "civil.Date"
	case spannerpb.TypeCode_NUMERIC:
		if nullable {
			return "spanner.NullNumeric"
		}
		return "big.Rat"
	case spannerpb.TypeCode_JSON:
		return "spanner.NullJSON"
	case spannerpb.TypeCode_ARRAY:
		return "[]interface{}"
	default:
		return "interface{}"
	}
}
