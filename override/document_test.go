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
	"errors"
	"strings"
	"testing"

	"cloud.google.com/go/spanner/apiv1/spannerpb"
	"github.com/google/go-cmp/cmp"
	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

const testDocument = `
schemaSelections:
  - table: "(customers|orders)"
typeMappings:
  - {sqlType: STRING, length: 36, notNull: true, type: uuid.UUID}
  - {sqlType: NUMERIC, type: decimal.Decimal}
tableFilters:
  - {matchName: "audit_.*", exclude: true}
  - matchName: ".*"
    package: com.acme
    meta:
      scope-class: [public]
tables:
  - name: customers
    class: Client
    primaryKey:
      property: customerId
      generator:
        class: sequence
        params: {sequence: customer_seq}
    columns:
      - {name: name, property: fullName}
      - {name: password_hash, exclude: true}
      - {name: id, type: uuid.UUID, meta: {use-in-equals: ["true"]}}
  - name: orders
    meta:
      implements: [Auditable]
    primaryKey:
      columns: [customer_id, order_id]
      compositeId: OrderKey
    foreignKeys:
      - constraintName: FK_Orders_Customers
        foreignTable: customers
        columns:
          - {name: customer_id, references: id}
        manyToOne: {property: buyer, fetch: join}
        inverse: {property: purchases, exclude: false, cascade: all}
`

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(testDocument))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if got := len(doc.Tables); got != 2 {
		t.Fatalf("expected 2 tables, got %d", got)
	}
	expectedFK := ForeignKeyDef{
		ConstraintName: "FK_Orders_Customers",
		ForeignTable:   "customers",
		Columns:        []ColumnRefDef{{Name: "customer_id", References: "id"}},
		ManyToOne:      &AssociationDef{Property: "buyer", Fetch: "join"},
		Inverse:        &AssociationDef{Property: "purchases", Exclude: boolPtr(false), Cascade: "all"},
	}
	if diff := cmp.Diff([]ForeignKeyDef{expectedFK}, doc.Tables[1].ForeignKeys); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	table := []struct {
		name     string
		document string
		contains string
	}{
		{
			name:     "Syntax",
			document: "tables: [",
		},
		{
			name:     "UnknownKey",
			document: "tables:\n  - {name: customers, klass: Client}\n",
			contains: "klass",
		},
		{
			name:     "MissingRequired",
			document: "typeMappings:\n  - {sqlType: STRING}\n",
			contains: "type",
		},
		{
			name:     "WrongType",
			document: "tableFilters:\n  - {matchName: x, exclude: maybe}\n",
			contains: "exclude",
		},
		{
			name:     "FetchEnum",
			document: "tables:\n  - name: orders\n    foreignKeys:\n      - constraintName: FK\n        manyToOne: {fetch: eager}\n",
			contains: "fetch",
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.document))
			if !errors.Is(err, ErrDocumentInvalid) {
				t.Fatalf("expected ErrDocumentInvalid, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("expected %q in %q", tc.contains, err.Error())
			}
		})
	}
}

func TestParseDocument_StableFirstError(t *testing.T) {
	document := []byte("gamma: 1\nalpha: 2\ndelta: 3\nbeta: 4\ntables:\n  - {name: orders, zeta: 1, eta: 2}\n")

	_, first := ParseDocument(document)
	if !errors.Is(first, ErrDocumentInvalid) {
		t.Fatalf("expected ErrDocumentInvalid, got %v", first)
	}
	if !strings.Contains(first.Error(), "alpha") {
		t.Errorf("expected alpha to be reported first, got %q", first.Error())
	}

	for i := 0; i < 100; i++ {
		_, err := ParseDocument(document)
		if err == nil || err.Error() != first.Error() {
			t.Fatalf("run %d: expected %q, got %v", i, first.Error(), err)
		}
	}
}

func TestParseDocument_Empty(t *testing.T) {
	for _, src := range []string{"", "{}", "# nothing\n"} {
		doc, err := ParseDocument([]byte(src))
		if err != nil {
			t.Errorf("ParseDocument(%q): %v", src, err)
			continue
		}
		if diff := cmp.Diff(&Document{}, doc); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
	}
}

func TestRepository_Apply(t *testing.T) {
	doc, err := ParseDocument([]byte(testDocument))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	repo := New()
	if err := repo.apply(doc); err != nil {
		t.Fatalf("apply: %v", err)
	}
	d := repo.Strategy(newBaseline())

	t.Run("Tables", func(t *testing.T) {
		if excluded, _ := d.ExcludeTable(models.NewTableIdentifier("audit_logs")); !excluded {
			t.Error("expected audit_logs to be excluded")
		}
		if got, _ := d.TableToClassName(customers); got != "com.acme.Client" {
			t.Errorf("expected com.acme.Client, got %q", got)
		}
		if got, _ := d.TableToClassName(orders); got != "com.acme.Order" {
			t.Errorf("expected com.acme.Order, got %q", got)
		}
		sels, _ := d.SchemaSelections()
		if diff := cmp.Diff([]strategy.SchemaSelection{{MatchTable: "(customers|orders)"}}, sels); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
	})

	t.Run("PrimaryKey", func(t *testing.T) {
		if got, _ := d.TableIdentifierStrategyName(customers); got != "sequence" {
			t.Errorf("expected sequence, got %q", got)
		}
		params, _ := d.TableIdentifierProperties(customers)
		if diff := cmp.Diff(map[string]string{"sequence": "customer_seq"}, params); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
		if got, _ := d.TableToIdentifierPropertyName(customers); got != "customerId" {
			t.Errorf("expected customerId, got %q", got)
		}
		cols, _ := d.PrimaryKeyColumnNames(orders)
		if diff := cmp.Diff([]string{"customer_id", "order_id"}, cols); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
		if got, _ := d.TableToCompositeIDName(orders); got != "OrderKey" {
			t.Errorf("expected OrderKey, got %q", got)
		}
	})

	t.Run("Columns", func(t *testing.T) {
		if got, _ := d.ColumnToPropertyName(customers, "name"); got != "fullName" {
			t.Errorf("expected fullName, got %q", got)
		}
		if excluded, _ := d.ExcludeColumn(customers, "password_hash"); !excluded {
			t.Error("expected password_hash to be excluded")
		}
		if got, _ := d.ColumnToTypeName(customers, "id", strategy.SQLType{Code: spannerpb.TypeCode_INT64}); got != "uuid.UUID" {
			t.Errorf("expected uuid.UUID, got %q", got)
		}

		uuidType := strategy.SQLType{Code: spannerpb.TypeCode_STRING, Length: 36}
		if got, _ := d.ColumnToTypeName(orders, "ref", uuidType); got != "uuid.UUID" {
			t.Errorf("expected uuid.UUID, got %q", got)
		}
		uuidType.Nullable = true
		if got, _ := d.ColumnToTypeName(orders, "ref", uuidType); got != "spanner.NullString" {
			t.Errorf("expected spanner.NullString, got %q", got)
		}
		numeric := strategy.SQLType{Code: spannerpb.TypeCode_NUMERIC, Length: strategy.NoLength, Precision: 38, Scale: 9}
		if got, _ := d.ColumnToTypeName(orders, "total", numeric); got != "decimal.Decimal" {
			t.Errorf("expected decimal.Decimal, got %q", got)
		}

		meta, _ := d.ColumnToMetaAttributes(customers, "id")
		if got := meta["use-in-equals"].Value(); got != "true" {
			t.Errorf("expected true, got %q", got)
		}
	})

	t.Run("ForeignKeys", func(t *testing.T) {
		fks, err := d.ForeignKeys(customers)
		if err != nil {
			t.Fatalf("ForeignKeys: %v", err)
		}
		expected := []*models.ForeignKey{
			{
				Name:              "FK_Orders_Customers",
				Table:             orders,
				Columns:           []string{"customer_id"},
				ReferencedTable:   customers,
				ReferencedColumns: []string{"id"},
			},
		}
		if diff := cmp.Diff(expected, fks); diff != "" {
			t.Fatalf("(-want, +got)\n%s", diff)
		}

		fk := fks[0]
		if got, _ := d.ForeignKeyToEntityName(fk, true); got != "buyer" {
			t.Errorf("expected buyer, got %q", got)
		}
		if got, _ := d.ForeignKeyToCollectionName(fk, true); got != "purchases" {
			t.Errorf("expected purchases, got %q", got)
		}
		if excluded, _ := d.ExcludeForeignKeyAsCollection(fk); excluded {
			t.Error("expected the collection to be kept")
		}
		info, _ := d.ForeignKeyToAssociationInfo(fk)
		if diff := cmp.Diff(&strategy.AssociationInfo{Fetch: "join"}, info); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
		inverse, _ := d.ForeignKeyToInverseAssociationInfo(fk)
		if diff := cmp.Diff(&strategy.AssociationInfo{Cascade: "all"}, inverse); diff != "" {
			t.Errorf("(-want, +got)\n%s", diff)
		}
	})

	t.Run("MetaAttributes", func(t *testing.T) {
		meta, _ := d.TableToMetaAttributes(customers)
		if got := meta["scope-class"].Value(); got != "public" {
			t.Errorf("expected public, got %q", got)
		}
		meta, _ = d.TableToMetaAttributes(orders)
		if _, ok := meta["scope-class"]; ok {
			t.Error("expected the table attributes to replace the filter attributes")
		}
		if got := meta["implements"].Value(); got != "Auditable" {
			t.Errorf("expected Auditable, got %q", got)
		}
	})
}

func TestRepository_ApplyUnknownSQLType(t *testing.T) {
	doc, err := ParseDocument([]byte("typeMappings:\n  - {sqlType: VARCHAR2, type: string}\n"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if err := New().apply(doc); !errors.Is(err, ErrDocumentInvalid) {
		t.Errorf("expected ErrDocumentInvalid, got %v", err)
	}
}

func TestRepository_ApplyInvalidFilterPattern(t *testing.T) {
	doc, err := ParseDocument([]byte("tableFilters:\n  - {matchName: \"(\"}\n"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if err := New().apply(doc); !errors.Is(err, ErrDocumentInvalid) {
		t.Errorf("expected ErrDocumentInvalid, got %v", err)
	}
}
