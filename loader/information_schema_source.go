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

package loader

import (
	"context"
	"fmt"
	"os"
	"sort"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
)

func NewInformationSchemaSource(ctx context.Context, client *spanner.Client) (SchemaSource, error) {
	return &informationSchemaSource{
		ctx:    ctx,
		client: client,
	}, nil
}

type informationSchemaSource struct {
	ctx    context.Context
	client *spanner.Client
}

// query runs stmt in a single-use read-only transaction and calls fn for each row.
func (s *informationSchemaSource) query(stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := s.client.Single().Query(s.ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				return nil
			}
			if spanner.ErrCode(err) == codes.NotFound {
				return fmt.Errorf("database not found: %w", err)
			}
			return err
		}

		if err := fn(row); err != nil {
			return err
		}
	}
}

func (s *informationSchemaSource) TableList() ([]*SpannerTable, error) {
	const sqlstr = `SELECT ` +
		`TABLE_NAME, PARENT_TABLE_NAME ` +
		`FROM INFORMATION_SCHEMA.TABLES ` +
		`WHERE TABLE_SCHEMA = "" ` +
		`ORDER BY TABLE_NAME`
	stmt := spanner.NewStatement(sqlstr)

	var res []*SpannerTable
	err := s.query(stmt, func(row *spanner.Row) error {
		var t SpannerTable
		if err := row.ColumnByName("TABLE_NAME", &t.TableName); err != nil {
			return err
		}

		var parentTableName spanner.NullString
		if err := row.ColumnByName("PARENT_TABLE_NAME", &parentTableName); err != nil {
			return err
		}
		t.ParentTableName = parentTableName.StringVal

		res = append(res, &t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *informationSchemaSource) ColumnList(table string) ([]*SpannerColumn, error) {
	const sqlstr = `SELECT ` +
		`c.COLUMN_NAME, c.ORDINAL_POSITION, c.IS_NULLABLE, c.SPANNER_TYPE, ` +
		`EXISTS (` +
		`  SELECT 1 FROM INFORMATION_SCHEMA.INDEX_COLUMNS ic ` +
		`  WHERE ic.TABLE_SCHEMA = "" and ic.TABLE_NAME = c.TABLE_NAME ` +
		`  AND ic.COLUMN_NAME = c.COLUMN_NAME` +
		`  AND ic.INDEX_NAME = "PRIMARY_KEY" ` +
		`) IS_PRIMARY_KEY, ` +
		`IS_GENERATED = "ALWAYS" AS IS_GENERATED ` +
		`FROM INFORMATION_SCHEMA.COLUMNS c ` +
		`WHERE c.TABLE_SCHEMA = "" AND c.TABLE_NAME = @table ` +
		`ORDER BY c.ORDINAL_POSITION`

	stmt := spanner.NewStatement(sqlstr)
	stmt.Params["table"] = table

	var unordered bool
	var res []*SpannerColumn
	err := s.query(stmt, func(row *spanner.Row) error {
		var c SpannerColumn
		var ord spanner.NullInt64
		if err := row.ColumnByName("ORDINAL_POSITION", &ord); err != nil {
			return err
		}
		if !ord.Valid {
			unordered = true
		}
		c.FieldOrdinal = int(ord.Int64)
		if err := row.ColumnByName("COLUMN_NAME", &c.ColumnName); err != nil {
			return err
		}
		var isNullable string
		if err := row.ColumnByName("IS_NULLABLE", &isNullable); err != nil {
			return err
		}
		c.NotNull = isNullable == "NO"
		if err := row.ColumnByName("SPANNER_TYPE", &c.DataType); err != nil {
			return err
		}
		if err := row.ColumnByName("IS_PRIMARY_KEY", &c.IsPrimaryKey); err != nil {
			return err
		}
		if err := row.ColumnByName("IS_GENERATED", &c.IsGenerated); err != nil {
			return err
		}

		res = append(res, &c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The emulator returns rows without an ordinal position in random order.
	if os.Getenv("SPANNER_EMULATOR_HOST") != "" && unordered {
		sort.Slice(res, func(i, j int) bool {
			return res[i].ColumnName < res[j].ColumnName
		})
	}

	return res, nil
}

func (s *informationSchemaSource) IndexColumnList(table string, index string) ([]*SpannerIndexColumn, error) {
	const sqlstr = `SELECT ` +
		`ORDINAL_POSITION, COLUMN_NAME ` +
		`FROM INFORMATION_SCHEMA.INDEX_COLUMNS ` +
		`WHERE TABLE_SCHEMA = "" AND INDEX_NAME = @index AND TABLE_NAME = @table ` +
		`ORDER BY ORDINAL_POSITION`

	stmt := spanner.NewStatement(sqlstr)
	stmt.Params["table"] = table
	stmt.Params["index"] = index

	var res []*SpannerIndexColumn
	err := s.query(stmt, func(row *spanner.Row) error {
		var i SpannerIndexColumn
		var ord spanner.NullInt64
		if err := row.ColumnByName("ORDINAL_POSITION", &ord); err != nil {
			return err
		}
		i.SeqNo = int(ord.Int64)
		if err := row.ColumnByName("COLUMN_NAME", &i.ColumnName); err != nil {
			return err
		}

		res = append(res, &i)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (s *informationSchemaSource) ForeignKeyList(table string) ([]*SpannerForeignKey, error) {
	const sqlstr = `SELECT ` +
		`rc.CONSTRAINT_NAME, kcu.COLUMN_NAME, ` +
		`ref.TABLE_NAME AS REFERENCED_TABLE, ref.COLUMN_NAME AS REFERENCED_COLUMN ` +
		`FROM INFORMATION_SCHEMA.REFERENTIAL_CONSTRAINTS rc ` +
		`JOIN INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc ` +
		`  ON tc.CONSTRAINT_SCHEMA = rc.CONSTRAINT_SCHEMA AND tc.CONSTRAINT_NAME = rc.CONSTRAINT_NAME ` +
		`JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ` +
		`  ON kcu.CONSTRAINT_SCHEMA = rc.CONSTRAINT_SCHEMA AND kcu.CONSTRAINT_NAME = rc.CONSTRAINT_NAME ` +
		`JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE ref ` +
		`  ON ref.CONSTRAINT_SCHEMA = rc.UNIQUE_CONSTRAINT_SCHEMA AND ref.CONSTRAINT_NAME = rc.UNIQUE_CONSTRAINT_NAME ` +
		`  AND ref.ORDINAL_POSITION = kcu.POSITION_IN_UNIQUE_CONSTRAINT ` +
		`WHERE tc.TABLE_SCHEMA = "" AND tc.TABLE_NAME = @table ` +
		`ORDER BY rc.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`

	stmt := spanner.NewStatement(sqlstr)
	stmt.Params["table"] = table

	var res []*SpannerForeignKey
	err := s.query(stmt, func(row *spanner.Row) error {
		var name, col, refTable, refCol string
		if err := row.Columns(&name, &col, &refTable, &refCol); err != nil {
			return err
		}

		// rows of one constraint are adjacent
		if n := len(res); n == 0 || res[n-1].ConstraintName != name {
			res = append(res, &SpannerForeignKey{
				ConstraintName:  name,
				ReferencedTable: refTable,
			})
		}
		fk := res[len(res)-1]
		fk.Columns = append(fk.Columns, col)
		fk.ReferencedColumns = append(fk.ReferencedColumns, refCol)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
