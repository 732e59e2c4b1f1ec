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

// Package strategy defines the decisions a mapping generator asks for while
// walking a relational schema, and a default implementation of them.
package strategy

import (
	"strings"

	"go.mercari.io/reveng/models"
)

// Strategy answers every naming, typing and inclusion question a generator
// asks about a schema. Implementations return an error only when they cannot
// answer at all.
type Strategy interface {
	ExcludeTable(ti models.TableIdentifier) (bool, error)
	ExcludeColumn(ti models.TableIdentifier, column string) (bool, error)

	TableToClassName(ti models.TableIdentifier) (string, error)
	ColumnToPropertyName(ti models.TableIdentifier, column string) (string, error)
	ColumnToTypeName(ti models.TableIdentifier, column string, typ SQLType) (string, error)

	TableToIdentifierPropertyName(ti models.TableIdentifier) (string, error)
	TableToCompositeIDName(ti models.TableIdentifier) (string, error)
	TableIdentifierStrategyName(ti models.TableIdentifier) (string, error)
	TableIdentifierProperties(ti models.TableIdentifier) (map[string]string, error)
	PrimaryKeyColumnNames(ti models.TableIdentifier) ([]string, error)

	// ForeignKeys lists the foreign keys referencing the given table.
	ForeignKeys(referenced models.TableIdentifier) ([]*models.ForeignKey, error)
	ForeignKeyToEntityName(fk *models.ForeignKey, uniqueReference bool) (string, error)
	ForeignKeyToInverseEntityName(fk *models.ForeignKey, uniqueReference bool) (string, error)
	ForeignKeyToCollectionName(fk *models.ForeignKey, uniqueReference bool) (string, error)
	ExcludeForeignKeyAsCollection(fk *models.ForeignKey) (bool, error)
	ExcludeForeignKeyAsManyToOne(fk *models.ForeignKey) (bool, error)
	ForeignKeyToAssociationInfo(fk *models.ForeignKey) (*AssociationInfo, error)
	ForeignKeyToInverseAssociationInfo(fk *models.ForeignKey) (*AssociationInfo, error)

	SchemaSelections() ([]SchemaSelection, error)

	TableToMetaAttributes(ti models.TableIdentifier) (map[string]MetaAttribute, error)
	ColumnToMetaAttributes(ti models.TableIdentifier, column string) (map[string]MetaAttribute, error)
}

// AssociationInfo holds the mapping options of one side of an association.
type AssociationInfo struct {
	Cascade string
	Fetch   string
	Update  *bool
	Insert  *bool
}

// SchemaSelection selects the tables a schema reader should read. Empty
// fields match everything.
type SchemaSelection struct {
	MatchCatalog string
	MatchSchema  string
	MatchTable   string
}

// MetaAttribute is a named, possibly multi valued, annotation attached to a
// generated class or property.
type MetaAttribute struct {
	Name   string
	Values []string
}

// Value returns the values joined by a space.
func (m MetaAttribute) Value() string {
	return strings.Join(m.Values, " ")
}

// IsMultiValued reports whether the attribute has more than one value.
func (m MetaAttribute) IsMultiValued() bool {
	return len(m.Values) > 1
}

// RealizeMetaAttribute converts raw attribute values into a MetaAttribute.
func RealizeMetaAttribute(name string, values []string) MetaAttribute {
	vs := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			vs = append(vs, v)
		}
	}
	return MetaAttribute{Name: name, Values: vs}
}

// RealizeMetaAttributes converts a raw attribute map. It returns nil for an
// empty map.
func RealizeMetaAttributes(raw map[string][]string) map[string]MetaAttribute {
	if len(raw) == 0 {
		return nil
	}
	res := make(map[string]MetaAttribute, len(raw))
	for name, values := range raw {
		res[name] = RealizeMetaAttribute(name, values)
	}
	return res
}
