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
	"fmt"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"
	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
	"gopkg.in/yaml.v2"
)

// Document is an override document.
//
//	schemaSelections:
//	  - schema: public
//	typeMappings:
//	  - {sqlType: STRING, length: 36, type: uuid.UUID}
//	tableFilters:
//	  - {matchName: "audit_.*", exclude: true}
//	  - {matchName: ".*", package: models}
//	tables:
//	  - name: Customers
//	    class: Client
//	    columns:
//	      - {name: Name, property: fullName}
type Document struct {
	SchemaSelections []SchemaSelectionDef `yaml:"schemaSelections"`
	TypeMappings     []TypeMappingDef     `yaml:"typeMappings"`
	TableFilters     []TableFilterDef     `yaml:"tableFilters"`
	Tables           []TableDef           `yaml:"tables"`
}

type SchemaSelectionDef struct {
	Catalog string `yaml:"catalog"`
	Schema  string `yaml:"schema"`
	Table   string `yaml:"table"`
}

// TypeMappingDef maps a sql type to a type name. Omitted length, precision,
// scale and notNull match any value; length -1 is MAX.
type TypeMappingDef struct {
	SQLType   string `yaml:"sqlType"`
	Length    *int   `yaml:"length"`
	Precision *int   `yaml:"precision"`
	Scale     *int   `yaml:"scale"`
	NotNull   *bool  `yaml:"notNull"`
	Type      string `yaml:"type"`
}

type TableFilterDef struct {
	MatchCatalog string              `yaml:"matchCatalog"`
	MatchSchema  string              `yaml:"matchSchema"`
	MatchName    string              `yaml:"matchName"`
	Exclude      bool                `yaml:"exclude"`
	Package      string              `yaml:"package"`
	Meta         map[string][]string `yaml:"meta"`
}

type TableDef struct {
	Catalog     string              `yaml:"catalog"`
	Schema      string              `yaml:"schema"`
	Name        string              `yaml:"name"`
	Class       string              `yaml:"class"`
	Meta        map[string][]string `yaml:"meta"`
	PrimaryKey  *PrimaryKeyDef      `yaml:"primaryKey"`
	Columns     []ColumnDef         `yaml:"columns"`
	ForeignKeys []ForeignKeyDef     `yaml:"foreignKeys"`
}

type PrimaryKeyDef struct {
	Property    string        `yaml:"property"`
	CompositeID string        `yaml:"compositeId"`
	Columns     []string      `yaml:"columns"`
	Generator   *GeneratorDef `yaml:"generator"`
}

type GeneratorDef struct {
	Class  string            `yaml:"class"`
	Params map[string]string `yaml:"params"`
}

type ColumnDef struct {
	Name     string              `yaml:"name"`
	Type     string              `yaml:"type"`
	Property string              `yaml:"property"`
	Exclude  bool                `yaml:"exclude"`
	Meta     map[string][]string `yaml:"meta"`
}

// ForeignKeyDef overrides the naming of a foreign key. With foreignTable and
// columns it also declares a foreign key missing from the schema.
type ForeignKeyDef struct {
	ConstraintName string          `yaml:"constraintName"`
	ForeignCatalog string          `yaml:"foreignCatalog"`
	ForeignSchema  string          `yaml:"foreignSchema"`
	ForeignTable   string          `yaml:"foreignTable"`
	Columns        []ColumnRefDef  `yaml:"columns"`
	ManyToOne      *AssociationDef `yaml:"manyToOne"`
	Inverse        *AssociationDef `yaml:"inverse"`
}

type ColumnRefDef struct {
	Name       string `yaml:"name"`
	References string `yaml:"references"`
}

type AssociationDef struct {
	Property string `yaml:"property"`
	Exclude  *bool  `yaml:"exclude"`
	Cascade  string `yaml:"cascade"`
	Fetch    string `yaml:"fetch"`
	Update   *bool  `yaml:"update"`
	Insert   *bool  `yaml:"insert"`
}

var compiledDocumentSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// ParseDocument validates and decodes an override document. Only the first
// validation error, in field order, is reported.
func ParseDocument(b []byte) (*Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	schema, err := compiledDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile override document schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(normalizeYAML(raw)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrDocumentInvalid, firstValidationError(result.Errors()))
	}

	var doc Document
	if err := yaml.UnmarshalStrict(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentInvalid, err)
	}
	return &doc, nil
}

// firstValidationError picks the first of errs ordered by field, error type
// and message. gojsonschema reports object errors in map iteration order.
func firstValidationError(errs []gojsonschema.ResultError) string {
	sorted := make([]gojsonschema.ResultError, len(errs))
	copy(sorted, errs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Field() != b.Field() {
			return a.Field() < b.Field()
		}
		if a.Type() != b.Type() {
			return a.Type() < b.Type()
		}
		return a.String() < b.String()
	})
	return sorted[0].String()
}

// normalizeYAML turns the map[interface{}]interface{} values of yaml.v2 into
// JSON compatible maps.
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []interface{}:
		res := make([]interface{}, len(v))
		for i, val := range v {
			res[i] = normalizeYAML(val)
		}
		return res
	default:
		return v
	}
}

// apply binds doc into the repository. Entries applied before an error are
// kept.
func (r *Repository) apply(doc *Document) error {
	for _, sel := range doc.SchemaSelections {
		r.AddSchemaSelection(strategy.SchemaSelection{
			MatchCatalog: sel.Catalog,
			MatchSchema:  sel.Schema,
			MatchTable:   sel.Table,
		})
	}

	for i, def := range doc.TypeMappings {
		m, err := def.mapping()
		if err != nil {
			return fmt.Errorf("%w: typeMappings[%d]: %v", ErrDocumentInvalid, i, err)
		}
		r.AddTypeMapping(m)
	}

	for i, def := range doc.TableFilters {
		f, err := NewTableFilter(def.MatchCatalog, def.MatchSchema, def.MatchName)
		if err != nil {
			return fmt.Errorf("%w: tableFilters[%d]: %v", ErrDocumentInvalid, i, err)
		}
		f.Exclude = def.Exclude
		f.Package = def.Package
		f.MetaAttributes = def.Meta
		if err := r.AddTableFilter(f); err != nil {
			return fmt.Errorf("%w: tableFilters[%d]: %v", ErrDocumentInvalid, i, err)
		}
	}

	for _, def := range doc.Tables {
		r.bindTable(def)
	}

	return nil
}

func (def TypeMappingDef) mapping() (SQLTypeMapping, error) {
	code, err := strategy.ParseTypeCode(def.SQLType)
	if err != nil {
		return SQLTypeMapping{}, err
	}

	m := NewSQLTypeMapping(code, def.Type)
	if def.Length != nil {
		m.Length = *def.Length
	}
	if def.Precision != nil {
		m.Precision = *def.Precision
	}
	if def.Scale != nil {
		m.Scale = *def.Scale
	}
	if def.NotNull != nil {
		nullable := !*def.NotNull
		m.Nullable = &nullable
	}
	return m, nil
}

func (r *Repository) bindTable(def TableDef) {
	ti := models.TableIdentifier{Catalog: def.Catalog, Schema: def.Schema, Name: def.Name}
	table := &models.Table{Catalog: def.Catalog, Schema: def.Schema, Name: def.Name}

	for _, fkDef := range def.ForeignKeys {
		if fk := fkDef.foreignKey(ti); fk != nil {
			table.ForeignKeys = append(table.ForeignKeys, fk)
		}
		r.RecordForeignKeyInfo(fkDef.ConstraintName, ForeignKeyInfo{
			ToOneProperty:      fkDef.ManyToOne.property(),
			InverseProperty:    fkDef.Inverse.property(),
			ExcludeToOne:       fkDef.ManyToOne.exclude(),
			ExcludeInverse:     fkDef.Inverse.exclude(),
			Association:        fkDef.ManyToOne.associationInfo(),
			InverseAssociation: fkDef.Inverse.associationInfo(),
		})
	}
	r.RegisterTable(table, def.Class)

	if pk := def.PrimaryKey; pk != nil {
		if pk.Generator != nil {
			r.SetIdentifierStrategyForTable(ti, pk.Generator.Class, pk.Generator.Params)
		}
		r.SetPrimaryKeyInfoForTable(ti, pk.Columns, pk.Property, pk.CompositeID)
	}

	for _, col := range def.Columns {
		if col.Exclude {
			r.SetExcludedColumn(ti, col.Name)
		}
		r.SetTypeForColumn(ti, col.Name, col.Type)
		r.SetPropertyForColumn(ti, col.Name, col.Property)
		r.SetColumnMetaAttributes(ti, col.Name, col.Meta)
	}

	r.SetTableMetaAttributes(ti, def.Meta)
}

// foreignKey returns the foreign key declared by def, or nil if def only
// overrides naming. The referenced table defaults to the catalog and schema
// of the owning table.
func (def ForeignKeyDef) foreignKey(owner models.TableIdentifier) *models.ForeignKey {
	if def.ForeignTable == "" || len(def.Columns) == 0 {
		return nil
	}

	ref := models.TableIdentifier{Catalog: owner.Catalog, Schema: owner.Schema, Name: def.ForeignTable}
	if def.ForeignCatalog != "" {
		ref.Catalog = def.ForeignCatalog
	}
	if def.ForeignSchema != "" {
		ref.Schema = def.ForeignSchema
	}

	fk := &models.ForeignKey{
		Name:            def.ConstraintName,
		Table:           owner,
		ReferencedTable: ref,
	}
	for _, c := range def.Columns {
		fk.Columns = append(fk.Columns, c.Name)
		fk.ReferencedColumns = append(fk.ReferencedColumns, c.References)
	}
	return fk
}

func (a *AssociationDef) property() string {
	if a == nil {
		return ""
	}
	return a.Property
}

func (a *AssociationDef) exclude() *bool {
	if a == nil {
		return nil
	}
	return a.Exclude
}

func (a *AssociationDef) associationInfo() *strategy.AssociationInfo {
	if a == nil || (a.Cascade == "" && a.Fetch == "" && a.Update == nil && a.Insert == nil) {
		return nil
	}
	return &strategy.AssociationInfo{
		Cascade: a.Cascade,
		Fetch:   a.Fetch,
		Update:  a.Update,
		Insert:  a.Insert,
	}
}
