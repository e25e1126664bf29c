package fieldstore

import (
	"context"
	"database/sql"

	"github.com/tomberek/fieldstore/field"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so reads issued while
// saving observe the save's own transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// loadRows materializes every result row into a column name to value map.
func loadRows(ctx context.Context, q querier, query string, args ...any) ([]field.Row, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, field.StorageFailure(err, "query")
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, field.StorageFailure(err, "columns")
	}
	var res []field.Row
	for rows.Next() {
		valPtrs := make([]interface{}, len(columns))
		vals := make([]interface{}, len(columns))
		for i := range columns {
			valPtrs[i] = &vals[i]
		}
		if err := rows.Scan(valPtrs...); err != nil {
			return nil, field.StorageFailure(err, "scan")
		}
		row := make(field.Row, len(columns))
		for i, col := range columns {
			if b, ok := vals[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = vals[i]
		}
		res = append(res, row)
	}
	if err := rows.Err(); err != nil {
		return nil, field.StorageFailure(err, "rows")
	}
	return res, nil
}

func queryInt(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, field.StorageFailure(err, "query")
	}
	return n, nil
}

func exec(ctx context.Context, q querier, op, query string, args ...any) error {
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return field.StorageFailure(err, op)
	}
	return nil
}
