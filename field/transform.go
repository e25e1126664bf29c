package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one materialized storage row, column name to value.
type Row map[string]any

// Storage column names of the field, inode and field_variable tables.
const (
	ColInode        = "inode"
	ColContentType  = "structure_inode"
	ColName         = "field_name"
	ColKind         = "field_type"
	ColRelationType = "field_relation_type"
	ColDBColumn     = "field_contentlet"
	ColRequired     = "required"
	ColIndexed      = "indexed"
	ColListed       = "listed"
	ColVariable     = "velocity_var_name"
	ColSortOrder    = "sort_order"
	ColValues       = "field_values"
	ColRegexCheck   = "regex_check"
	ColHint         = "hint"
	ColDefaultValue = "default_value"
	ColFixed        = "fixed"
	ColReadOnly     = "read_only"
	ColSearchable   = "searchable"
	ColUnique       = "unique_"
	ColModDate      = "mod_date"
	ColOwner        = "owner"
	ColIDate        = "idate"
	ColVarID        = "id"
	ColVarFieldID   = "field_id"
	ColVarName      = "variable_name"
	ColVarKey       = "variable_key"
	ColVarValue     = "variable_value"
	ColVarUserID    = "user_id"
	ColVarModDate   = "last_mod_date"
)

// FromRow transforms a field row. Optional columns may be absent and take
// their zero value; inode, structure_inode and field_contentlet are required.
func FromRow(row Row) (Field, error) {
	inode, err := row.mandatory(ColInode)
	if err != nil {
		return Field{}, err
	}
	typeID, err := row.mandatory(ColContentType)
	if err != nil {
		return Field{}, err
	}
	column, err := row.mandatory(ColDBColumn)
	if err != nil {
		return Field{}, err
	}
	dt := DataTypeFromColumn(column)
	if dt == "" {
		return Field{}, InvalidDataType("field %s: column «%s» has no known data type", inode, column)
	}
	return Field{
		Inode:         inode,
		ContentTypeID: typeID,
		Name:          row.str(ColName),
		Variable:      row.str(ColVariable),
		Kind:          Kind(row.str(ColKind)),
		DataType:      dt,
		DBColumn:      column,
		SortOrder:     row.integer(ColSortOrder),
		Required:      row.boolean(ColRequired),
		Indexed:       row.boolean(ColIndexed),
		Listed:        row.boolean(ColListed),
		Searchable:    row.boolean(ColSearchable),
		Unique:        row.boolean(ColUnique),
		Fixed:         row.boolean(ColFixed),
		ReadOnly:      row.boolean(ColReadOnly),
		RelationType:  row.str(ColRelationType),
		Values:        row.str(ColValues),
		RegexCheck:    row.str(ColRegexCheck),
		Hint:          row.str(ColHint),
		DefaultValue:  row.str(ColDefaultValue),
		Owner:         row.str(ColOwner),
		IDate:         row.timestamp(ColIDate),
		ModDate:       row.timestamp(ColModDate),
	}, nil
}

// FromRows transforms every row, failing on the first bad one.
func FromRows(rows []Row) ([]Field, error) {
	res := make([]Field, 0, len(rows))
	for _, r := range rows {
		f, err := FromRow(r)
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	return res, nil
}

// VariableFromRow transforms a field_variable row; id and field_id are required.
func VariableFromRow(row Row) (Variable, error) {
	id, err := row.mandatory(ColVarID)
	if err != nil {
		return Variable{}, err
	}
	fieldID, err := row.mandatory(ColVarFieldID)
	if err != nil {
		return Variable{}, err
	}
	return Variable{
		ID:      id,
		FieldID: fieldID,
		Name:    row.str(ColVarName),
		Key:     row.str(ColVarKey),
		Value:   row.str(ColVarValue),
		UserID:  row.str(ColVarUserID),
		ModDate: row.timestamp(ColVarModDate),
	}, nil
}

func VariablesFromRows(rows []Row) ([]Variable, error) {
	res := make([]Variable, 0, len(rows))
	for _, r := range rows {
		v, err := VariableFromRow(r)
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

func (r Row) mandatory(col string) (string, error) {
	if v, ok := r[col]; !ok || v == nil {
		return "", MissingColumn(col)
	}
	s := r.str(col)
	if s == "" {
		return "", MissingColumn(col)
	}
	return s, nil
}

func (r Row) str(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r Row) integer(col string) int {
	switch v := r[col].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

func (r Row) boolean(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	}
	return false
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes":
		return true
	}
	return false
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02",
}

func (r Row) timestamp(col string) time.Time {
	var s string
	switch v := r[col].(type) {
	case time.Time:
		return v.UTC()
	case int64:
		return time.Unix(v, 0).UTC()
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return time.Time{}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
