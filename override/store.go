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

// Map is a keyed override container. Writes of empty values are ignored so a
// partial update never clears a value set before.
type Map[K comparable, V any] struct {
	values  map[K]V
	isEmpty func(V) bool
}

// NewMap returns a Map treating values for which isEmpty returns true as
// absent.
func NewMap[K comparable, V any](isEmpty func(V) bool) *Map[K, V] {
	return &Map[K, V]{values: make(map[K]V), isEmpty: isEmpty}
}

// Set stores v under k unless v is empty. It reports whether v was stored.
func (m *Map[K, V]) Set(k K, v V) bool {
	if m.isEmpty(v) {
		return false
	}
	m.values[k] = v
	return true
}

// Get returns the value stored under k.
func (m *Map[K, V]) Get(k K) (V, bool) {
	v, ok := m.values[k]
	return v, ok
}

// Len returns the number of stored values.
func (m *Map[K, V]) Len() int {
	return len(m.values)
}

func emptyString(s string) bool { return s == "" }

func nilPointer[T any](p *T) bool { return p == nil }

func emptySlice[T any](s []T) bool { return len(s) == 0 }

func emptyMap[K comparable, V any](m map[K]V) bool { return len(m) == 0 }

// Set is a set of keys.
type Set[K comparable] map[K]struct{}

func (s Set[K]) Add(k K) { s[k] = struct{}{} }

func (s Set[K]) Contains(k K) bool {
	_, ok := s[k]
	return ok
}

// ForeignKeyInfo holds the overrides of both sides of a foreign key. The
// owning side maps to a many-to-one (or one-to-one) association, the inverse
// side to a collection (or the other end of a one-to-one). Zero fields are
// absent.
type ForeignKeyInfo struct {
	ToOneProperty      string
	InverseProperty    string
	ExcludeToOne       *bool
	ExcludeInverse     *bool
	Association        *strategy.AssociationInfo
	InverseAssociation *strategy.AssociationInfo
}

// Store holds every single fact override.
type Store struct {
	tableToClassName           *Map[models.TableIdentifier, string]
	typeForColumn              *Map[ColumnKey, string]
	propertyNameForColumn      *Map[ColumnKey, string]
	excludedColumns            Set[ColumnKey]
	identifierStrategyForTable *Map[models.TableIdentifier, string]
	identifierPropsForTable    *Map[models.TableIdentifier, map[string]string]
	primaryKeyColumnsForTable  *Map[models.TableIdentifier, []string]
	propertyNameForPrimaryKey  *Map[models.TableIdentifier, string]
	compositeIDNameForTable    *Map[models.TableIdentifier, string]

	foreignKeyToOneName      *Map[string, string]
	foreignKeyToInverseName  *Map[string, string]
	foreignKeyToOneExclude   *Map[string, *bool]
	foreignKeyInverseExclude *Map[string, *bool]
	foreignKeyToEntityInfo   *Map[string, *strategy.AssociationInfo]
	foreignKeyToInverseInfo  *Map[string, *strategy.AssociationInfo]

	// referenced table -> foreign keys pointing at it
	foreignKeys map[models.TableIdentifier][]*models.ForeignKey

	schemaSelections []strategy.SchemaSelection

	tableMetaAttributes  *Map[models.TableIdentifier, map[string][]string]
	columnMetaAttributes *Map[ColumnKey, map[string][]string]
}

func newStore() *Store {
	return &Store{
		tableToClassName:           NewMap[models.TableIdentifier](emptyString),
		typeForColumn:              NewMap[ColumnKey](emptyString),
		propertyNameForColumn:      NewMap[ColumnKey](emptyString),
		excludedColumns:            Set[ColumnKey]{},
		identifierStrategyForTable: NewMap[models.TableIdentifier](emptyString),
		identifierPropsForTable:    NewMap[models.TableIdentifier](emptyMap[string, string]),
		primaryKeyColumnsForTable:  NewMap[models.TableIdentifier](emptySlice[string]),
		propertyNameForPrimaryKey:  NewMap[models.TableIdentifier](emptyString),
		compositeIDNameForTable:    NewMap[models.TableIdentifier](emptyString),

		foreignKeyToOneName:      NewMap[string](emptyString),
		foreignKeyToInverseName:  NewMap[string](emptyString),
		foreignKeyToOneExclude:   NewMap[string](nilPointer[bool]),
		foreignKeyInverseExclude: NewMap[string](nilPointer[bool]),
		foreignKeyToEntityInfo:   NewMap[string](nilPointer[strategy.AssociationInfo]),
		foreignKeyToInverseInfo:  NewMap[string](nilPointer[strategy.AssociationInfo]),

		foreignKeys: make(map[models.TableIdentifier][]*models.ForeignKey),

		tableMetaAttributes:  NewMap[models.TableIdentifier](emptyMap[string, []string]),
		columnMetaAttributes: NewMap[ColumnKey](emptyMap[string, []string]),
	}
}

// recordForeignKeyInfo writes the non zero fields of info only.
func (s *Store) recordForeignKeyInfo(constraintName string, info ForeignKeyInfo) {
	s.foreignKeyToOneName.Set(constraintName, info.ToOneProperty)
	s.foreignKeyToInverseName.Set(constraintName, info.InverseProperty)
	s.foreignKeyToOneExclude.Set(constraintName, info.ExcludeToOne)
	s.foreignKeyInverseExclude.Set(constraintName, info.ExcludeInverse)
	s.foreignKeyToEntityInfo.Set(constraintName, info.Association)
	s.foreignKeyToInverseInfo.Set(constraintName, info.InverseAssociation)
}

// foreignKeyInfo returns everything recorded for constraintName.
func (s *Store) foreignKeyInfo(constraintName string) ForeignKeyInfo {
	var info ForeignKeyInfo
	info.ToOneProperty, _ = s.foreignKeyToOneName.Get(constraintName)
	info.InverseProperty, _ = s.foreignKeyToInverseName.Get(constraintName)
	info.ExcludeToOne, _ = s.foreignKeyToOneExclude.Get(constraintName)
	info.ExcludeInverse, _ = s.foreignKeyInverseExclude.Get(constraintName)
	info.Association, _ = s.foreignKeyToEntityInfo.Get(constraintName)
	info.InverseAssociation, _ = s.foreignKeyToInverseInfo.Get(constraintName)
	return info
}

func (s *Store) registerTable(table *models.Table, className string) {
	for _, fk := range table.ForeignKeys {
		s.foreignKeys[fk.ReferencedTable] = append(s.foreignKeys[fk.ReferencedTable], fk)
	}
	s.tableToClassName.Set(table.Identifier(), className)
}
