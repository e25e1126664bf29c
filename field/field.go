// Package field holds the field definition model of a content type: the
// field record itself, its key/value variables, the closed sets of kinds and
// data types, and the transformation of raw storage rows into records.
package field

import "time"

// Field is one typed attribute of a content type. It is a value: derive
// modified copies with the With methods instead of sharing pointers.
type Field struct {
	Inode         string    `json:"inode,omitempty"`
	ContentTypeID string    `json:"contentTypeId"`
	Name          string    `json:"name"`
	Variable      string    `json:"variable"`
	Kind          Kind      `json:"kind"`
	DataType      DataType  `json:"dataType"`
	DBColumn      string    `json:"dbColumn,omitempty"`
	SortOrder     int       `json:"sortOrder"`
	Required      bool      `json:"required,omitempty"`
	Indexed       bool      `json:"indexed,omitempty"`
	Listed        bool      `json:"listed,omitempty"`
	Searchable    bool      `json:"searchable,omitempty"`
	Unique        bool      `json:"unique,omitempty"`
	Fixed         bool      `json:"fixed,omitempty"`
	ReadOnly      bool      `json:"readOnly,omitempty"`
	RelationType  string    `json:"relationType,omitempty"`
	Values        string    `json:"values,omitempty"`
	RegexCheck    string    `json:"regexCheck,omitempty"`
	Hint          string    `json:"hint,omitempty"`
	DefaultValue  string    `json:"defaultValue,omitempty"`
	Owner         string    `json:"owner,omitempty"`
	IDate         time.Time `json:"iDate,omitempty"`
	ModDate       time.Time `json:"modDate,omitempty"`
}

// New returns a field of kind k stored as the kind's default data type.
func New(contentTypeID, name, variable string, k Kind) Field {
	return Field{
		ContentTypeID: contentTypeID,
		Name:          name,
		Variable:      variable,
		Kind:          k,
		DataType:      k.DefaultDataType(),
	}
}

func (f Field) WithInode(inode string) Field {
	f.Inode = inode
	return f
}

func (f Field) WithDBColumn(column string) Field {
	f.DBColumn = column
	return f
}

func (f Field) WithModDate(t time.Time) Field {
	f.ModDate = t
	return f
}

func (f Field) WithIDate(t time.Time) Field {
	f.IDate = t
	return f
}

func (f Field) WithIndexed(indexed bool) Field {
	f.Indexed = indexed
	return f
}

// AcceptsDataType reports whether the field's kind accepts its data type.
func (f Field) AcceptsDataType() bool {
	return f.Kind.Accepts(f.DataType)
}

// NeedsIndex reports whether the field must be indexed regardless of what
// the caller asked for.
func (f Field) NeedsIndex() bool {
	return f.Searchable || f.Listed || f.Kind.Structural()
}

// Variable is a key/value annotation attached to a single field.
type Variable struct {
	ID      string    `json:"id,omitempty"`
	FieldID string    `json:"fieldId"`
	Name    string    `json:"name,omitempty"`
	Key     string    `json:"key"`
	Value   string    `json:"value"`
	UserID  string    `json:"userId,omitempty"`
	ModDate time.Time `json:"modDate,omitempty"`
}

// RoundToSecond is the timestamp precision persisted for modification dates.
func RoundToSecond(t time.Time) time.Time {
	return t.UTC().Round(time.Second)
}
