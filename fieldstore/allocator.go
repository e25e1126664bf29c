package fieldstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomberek/fieldstore/field"
)

// allocateColumn picks the storage column for a field saved for the first
// time. It only reads: nothing is reserved until the field row is inserted,
// so two concurrent saves on one content type may pick the same column; the
// idx_field_column index turns that into a storage failure at insert.
func (s *Store) allocateColumn(ctx context.Context, q querier, f field.Field) (string, error) {
	if !f.Kind.OccupiesColumn(f.DataType) {
		if f.Kind.ColumnCapped() {
			n, err := queryInt(ctx, q, sqlCountOfKind, f.ContentTypeID, string(f.Kind))
			if err != nil {
				return "", err
			}
			if n > 0 {
				err := field.OverLimit("only one %s field per content type %s", f.Kind, f.ContentTypeID)
				if f.Kind.OnePerContentType() {
					return "", markDuplicateSingleton(err)
				}
				return "", err
			}
		}
		return string(f.DataType), nil
	}

	prefix := string(f.DataType)
	rows, err := loadRows(ctx, q, sqlSelectColumnsOfDataType, f.ContentTypeID, prefix+"%")
	if err != nil {
		return "", err
	}
	taken := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		col, _ := r[field.ColDBColumn].(string)
		if n, ok := columnIndex(prefix, col); ok {
			taken[n] = struct{}{}
		}
	}

	limit := s.cfg.columns()
	for i := 1; i <= limit; i++ {
		if _, ok := taken[i]; !ok {
			return prefix + strconv.Itoa(i), nil
		}
	}
	return "", field.OverLimit("no more columns for data type %s on content type %s (limit %d)", prefix, f.ContentTypeID, limit)
}

// checkColumn approves a column the caller chose for a field that is not
// stored yet: the data type name for fields outside the numbered scheme,
// "<dataType><n>" within the cap for the others.
func (s *Store) checkColumn(f field.Field) error {
	prefix := string(f.DataType)
	if !f.Kind.OccupiesColumn(f.DataType) {
		if f.DBColumn != prefix {
			return field.InvalidDataType("%s field of data type %s is stored in column %s, not %s",
				f.Kind, f.DataType, prefix, f.DBColumn)
		}
		return nil
	}
	n, ok := columnIndex(prefix, f.DBColumn)
	if !ok {
		return field.InvalidDataType("column %s does not hold data type %s", f.DBColumn, f.DataType)
	}
	if limit := s.cfg.columns(); n > limit {
		return field.OverLimit("column %s is beyond the %d %s columns of content type %s",
			f.DBColumn, limit, prefix, f.ContentTypeID)
	}
	return nil
}

// columnIndex parses "<prefix><n>" with n >= 1. "text_area3" is not a text column.
func columnIndex(prefix, column string) (int, bool) {
	rest, ok := strings.CutPrefix(column, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 || prefix+strconv.Itoa(n) != column {
		return 0, false
	}
	return n, true
}

// markDuplicateSingleton makes an over-limit error for a one-per-type kind
// also match field.ErrDuplicateSingletonField.
func markDuplicateSingleton(err error) error {
	return fmt.Errorf("%w: %w", field.ErrDuplicateSingletonField, err)
}
