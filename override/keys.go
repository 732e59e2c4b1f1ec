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

	"go.mercari.io/reveng/models"
	"go.mercari.io/reveng/strategy"
)

// ColumnKey identifies a column of a table.
type ColumnKey struct {
	Table  models.TableIdentifier
	Column string
}

func (k ColumnKey) String() string {
	return k.Table.String() + "." + k.Column
}

// TypeMappingKey identifies a bucket of type mappings.
type TypeMappingKey struct {
	Code   strategy.TypeCode
	Length int
}

func (k TypeMappingKey) String() string {
	if k.Length == UnknownLength {
		return fmt.Sprintf("(type:%s, length:unknown)", k.Code)
	}
	return fmt.Sprintf("(type:%s, length:%d)", k.Code, k.Length)
}
