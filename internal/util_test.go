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

package internal

import "testing"

func TestIdentifiers(t *testing.T) {
	in := &DefaultInflector{}

	table := []struct {
		name     string
		fn       func(string) string
		in       string
		expected string
	}{
		{"Singularize", func(s string) string { return SingularizeIdentifier(in, s) }, "order_items", "OrderItem"},
		{"SingularizeOneWord", func(s string) string { return SingularizeIdentifier(in, s) }, "customers", "Customer"},
		{"SingularizeLower", func(s string) string { return SingularizeLowerIdentifier(in, s) }, "order_items", "orderItem"},
		{"Pluralize", func(s string) string { return PluralizeIdentifier(in, s) }, "order_item", "orderItems"},
		{"SnakeToCamel", SnakeToCamel, "unit_price", "UnitPrice"},
		{"SnakeToLowerCamel", SnakeToLowerCamel, "unit_price", "unitPrice"},
		{"Initialism", SnakeToLowerCamel, "customer_id", "customerID"},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.expected {
				t.Errorf("%s(%q): expected %q, got %q", tc.name, tc.in, tc.expected, got)
			}
		})
	}
}

func TestQualify(t *testing.T) {
	table := []struct {
		pkg, name, expected string
	}{
		{"com.acme", "Customer", "com.acme.Customer"},
		{"", "Customer", "Customer"},
	}
	for _, tc := range table {
		if got := Qualify(tc.pkg, tc.name); got != tc.expected {
			t.Errorf("Qualify(%q, %q): expected %q, got %q", tc.pkg, tc.name, tc.expected, got)
		}
	}

	for in, expected := range map[string]string{
		"com.acme.Customer": "Customer",
		"Customer":          "Customer",
	} {
		if got := Unqualify(in); got != expected {
			t.Errorf("Unqualify(%q): expected %q, got %q", in, expected, got)
		}
	}
}

func TestReverseIndexRune(t *testing.T) {
	table := []struct {
		s        string
		expected int
	}{
		{"", -1},
		{"customers", -1},
		{"order_items", 5},
		{"a_b_c", 3},
	}
	for _, tc := range table {
		if got := reverseIndexRune(tc.s, '_'); got != tc.expected {
			t.Errorf("reverseIndexRune(%q): expected %d, got %d", tc.s, tc.expected, got)
		}
	}
}
