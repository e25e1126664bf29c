package field

import "strings"

// DataType is the storage type of a field. Its string value is also the
// prefix of the numbered columns fields of that type are bound to.
type DataType string

const (
	DataTypeText           DataType = "text"
	DataTypeLongText       DataType = "text_area"
	DataTypeInteger        DataType = "integer"
	DataTypeFloat          DataType = "float"
	DataTypeDate           DataType = "date"
	DataTypeBool           DataType = "bool"
	DataTypeBinary         DataType = "binary"
	DataTypeConstant       DataType = "constant"
	DataTypeSectionDivider DataType = "section_divider"
	DataTypeSystem         DataType = "system_field"
)

var dataTypes = []DataType{
	DataTypeText,
	DataTypeLongText,
	DataTypeInteger,
	DataTypeFloat,
	DataTypeDate,
	DataTypeBool,
	DataTypeBinary,
	DataTypeConstant,
	DataTypeSectionDivider,
	DataTypeSystem,
}

// DataTypes returns every known data type.
func DataTypes() []DataType {
	return append([]DataType(nil), dataTypes...)
}

// Valid reports whether d is a known data type.
func (d DataType) Valid() bool {
	for _, dt := range dataTypes {
		if dt == d {
			return true
		}
	}
	return false
}

// Columnless data types never consume a numbered storage column: the data
// type name itself is stored as the field's pseudo-column.
func (d DataType) Columnless() bool {
	switch d {
	case DataTypeConstant, DataTypeSectionDivider, DataTypeSystem:
		return true
	}
	return false
}

func (d DataType) String() string {
	return string(d)
}

// DataTypeFromColumn recovers the data type a storage column belongs to:
// "text12" is text, "system_field" is system_field. Unknown prefixes yield
// the empty data type.
func DataTypeFromColumn(column string) DataType {
	prefix := strings.TrimRight(strings.ToLower(strings.TrimSpace(column)), "0123456789")
	dt := DataType(prefix)
	if !dt.Valid() {
		return ""
	}
	return dt
}
