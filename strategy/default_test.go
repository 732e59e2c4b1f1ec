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
	"testing"

	"cloud.google.com/go/spanner/apiv1/spannerpb"
	"github.com/google/go-cmp/cmp"
	"go.mercari.io/reveng/internal"
	"go.mercari.io/reveng/models"
)

func TestDefaultStrategy_Names(t *testing.T) {
	s := NewDefaultStrategy(&internal.DefaultInflector{})
	orderItems := models.NewTableIdentifier("order_items")

	className, _ := s.TableToClassName(orderItems)
	if className != "OrderItem" {
		t.Errorf("expected OrderItem, got %q", className)
	}
	compositeID, _ := s.TableToCompositeIDName(orderItems)
	if compositeID != "OrderItemID" {
		t.Errorf("expected OrderItemID, got %q", compositeID)
	}
	property, _ := s.ColumnToPropertyName(orderItems, "unit_price")
	if property != "unitPrice" {
		t.Errorf("expected unitPrice, got %q", property)
	}
	id, _ := s.TableToIdentifierPropertyName(orderItems)
	if id != "id" {
		t.Errorf("expected id, got %q", id)
	}
	gen, _ := s.TableIdentifierStrategyName(orderItems)
	if gen != DefaultIdentifierStrategy {
		t.Errorf("expected %q, got %q", DefaultIdentifierStrategy, gen)
	}
}

func TestDefaultStrategy_ForeignKeyNames(t *testing.T) {
	s := NewDefaultStrategy(&internal.DefaultInflector{})
	fk := &models.ForeignKey{
		Name:            "fk_billing_customer",
		Table:           models.NewTableIdentifier("invoices"),
		ReferencedTable: models.NewTableIdentifier("customers"),
	}

	table := []struct {
		name     string
		get      func() (string, error)
		expected string
	}{
		{"Entity", func() (string, error) { return s.ForeignKeyToEntityName(fk, true) }, "customer"},
		{"InverseEntity", func() (string, error) { return s.ForeignKeyToInverseEntityName(fk, true) }, "invoice"},
		{"Collection", func() (string, error) { return s.ForeignKeyToCollectionName(fk, true) }, "invoices"},
		{"CollectionNotUnique", func() (string, error) { return s.ForeignKeyToCollectionName(fk, false) }, "invoicesByFkBillingCustomer"},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.get()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestDefaultStrategy_ColumnToTypeName(t *testing.T) {
	s := NewDefaultStrategy(&internal.DefaultInflector{})

	table := []struct {
		code     spannerpb.TypeCode
		nullable bool
		expected string
	}{
		{spannerpb.TypeCode_STRING, false, "string"},
		{spannerpb.TypeCode_STRING, true, "spanner.NullString"},
		{spannerpb.TypeCode_INT64, false, "int64"},
		{spannerpb.TypeCode_INT64, true, "spanner.NullInt64"},
		{spannerpb.TypeCode_BYTES, true, "[]byte"},
		{spannerpb.TypeCode_TIMESTAMP, false, "time.Time"},
		{spannerpb.TypeCode_DATE, false, "civil.Date"},
		{spannerpb.TypeCode_NUMERIC, true, "spanner.NullNumeric"},
		{spannerpb.TypeCode_ARRAY, false, "[]interface{}"},
	}

	for _, tc := range table {
		got, err := s.ColumnToTypeName(models.NewTableIdentifier("t"), "c", SQLType{Code: tc.code, Nullable: tc.nullable})
		if err != nil {
			t.Fatalf("ColumnToTypeName: %v", err)
		}
		if got != tc.expected {
			t.Errorf("%v nullable=%v: expected %q, got %q", tc.code, tc.nullable, tc.expected, got)
		}
	}
}

func TestDefaultStrategy_Selections(t *testing.T) {
	s := NewDefaultStrategy(&internal.DefaultInflector{})

	sels, err := s.SchemaSelections()
	if err != nil {
		t.Fatalf("SchemaSelections: %v", err)
	}
	if diff := cmp.Diff([]SchemaSelection{{}}, sels); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}
}

func TestRealizeMetaAttributes(t *testing.T) {
	got := RealizeMetaAttributes(map[string][]string{
		"implements": {" Auditable", "Serializable ", "  "},
		"scope":      {"public"},
	})
	expected := map[string]MetaAttribute{
		"implements": {Name: "implements", Values: []string{"Auditable", "Serializable"}},
		"scope":      {Name: "scope", Values: []string{"public"}},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("(-want, +got)\n%s", diff)
	}

	if got["implements"].Value() != "Auditable Serializable" || !got["implements"].IsMultiValued() {
		t.Errorf("unexpected attribute %+v", got["implements"])
	}
	if got["scope"].IsMultiValued() {
		t.Error("expected scope to be single valued")
	}

	if RealizeMetaAttributes(nil) != nil {
		t.Error("expected nil for an empty map")
	}
}
