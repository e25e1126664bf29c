package field

// Kind tags the field variant. The set is closed: every kind has an entry in
// the kinds table below, and behaviour is driven by that entry.
type Kind string

const (
	KindText             Kind = "text"
	KindTextarea         Kind = "textarea"
	KindWysiwyg          Kind = "wysiwyg"
	KindKeyValue         Kind = "key_value"
	KindDate             Kind = "date"
	KindTime             Kind = "time"
	KindDateTime         Kind = "date_time"
	KindCheckbox         Kind = "checkbox"
	KindMultiSelect      Kind = "multi_select"
	KindRadio            Kind = "radio"
	KindSelect           Kind = "select"
	KindImage            Kind = "image"
	KindFile             Kind = "file"
	KindBinary           Kind = "binary"
	KindCustom           Kind = "custom"
	KindCategory         Kind = "category"
	KindConstant         Kind = "constant"
	KindHidden           Kind = "hidden"
	KindLineDivider      Kind = "line_divider"
	KindTabDivider       Kind = "tab_divider"
	KindHostFolder       Kind = "host_folder"
	KindTag              Kind = "tag"
	KindPermissionTab    Kind = "permission_tab"
	KindRelationshipsTab Kind = "relationships_tab"
)

type kindProps struct {
	accepts []DataType
	// at most one field of the kind per content type
	onePerType bool
	// bypasses numbered columns; a second field of the kind is over the limit
	cappedSlot bool
	// always indexed
	structural bool
}

var kinds = map[Kind]kindProps{
	KindText:             {accepts: []DataType{DataTypeText, DataTypeInteger, DataTypeFloat}},
	KindTextarea:         {accepts: []DataType{DataTypeLongText}},
	KindWysiwyg:          {accepts: []DataType{DataTypeLongText}},
	KindKeyValue:         {accepts: []DataType{DataTypeLongText}},
	KindDate:             {accepts: []DataType{DataTypeDate}},
	KindTime:             {accepts: []DataType{DataTypeDate}},
	KindDateTime:         {accepts: []DataType{DataTypeDate}},
	KindCheckbox:         {accepts: []DataType{DataTypeText}},
	KindMultiSelect:      {accepts: []DataType{DataTypeText}},
	KindRadio:            {accepts: []DataType{DataTypeText, DataTypeBool, DataTypeInteger, DataTypeFloat}},
	KindSelect:           {accepts: []DataType{DataTypeText, DataTypeBool, DataTypeInteger, DataTypeFloat}},
	KindImage:            {accepts: []DataType{DataTypeText}},
	KindFile:             {accepts: []DataType{DataTypeText}},
	KindBinary:           {accepts: []DataType{DataTypeSystem, DataTypeBinary}},
	KindCustom:           {accepts: []DataType{DataTypeText, DataTypeLongText}},
	KindCategory:         {accepts: []DataType{DataTypeSystem}},
	KindConstant:         {accepts: []DataType{DataTypeConstant}},
	KindHidden:           {accepts: []DataType{DataTypeConstant, DataTypeSystem}},
	KindLineDivider:      {accepts: []DataType{DataTypeSectionDivider}},
	KindTabDivider:       {accepts: []DataType{DataTypeSectionDivider}},
	KindHostFolder:       {accepts: []DataType{DataTypeSystem}, onePerType: true, cappedSlot: true, structural: true},
	KindTag:              {accepts: []DataType{DataTypeSystem}, cappedSlot: true},
	KindPermissionTab:    {accepts: []DataType{DataTypeSystem}, onePerType: true},
	KindRelationshipsTab: {accepts: []DataType{DataTypeSystem}, onePerType: true},
}

var kindOrder = []Kind{
	KindText, KindTextarea, KindWysiwyg, KindKeyValue,
	KindDate, KindTime, KindDateTime,
	KindCheckbox, KindMultiSelect, KindRadio, KindSelect,
	KindImage, KindFile, KindBinary, KindCustom, KindCategory,
	KindConstant, KindHidden, KindLineDivider, KindTabDivider,
	KindHostFolder, KindTag, KindPermissionTab, KindRelationshipsTab,
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kindOrder...)
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// AcceptedDataTypes returns the data types a field of kind k may be stored as.
// The first one is the kind's default.
func (k Kind) AcceptedDataTypes() []DataType {
	return append([]DataType(nil), kinds[k].accepts...)
}

// Accepts reports whether k may be stored as d.
func (k Kind) Accepts(d DataType) bool {
	for _, dt := range kinds[k].accepts {
		if dt == d {
			return true
		}
	}
	return false
}

// DefaultDataType is the first accepted data type, or empty for unknown kinds.
func (k Kind) DefaultDataType() DataType {
	if a := kinds[k].accepts; len(a) > 0 {
		return a[0]
	}
	return ""
}

func (k Kind) OnePerContentType() bool {
	return kinds[k].onePerType
}

// ColumnCapped kinds occupy a dedicated slot outside the numbered column
// scheme, so only one of them fits on a content type.
func (k Kind) ColumnCapped() bool {
	return kinds[k].cappedSlot
}

func (k Kind) Structural() bool {
	return kinds[k].structural
}

// OccupiesColumn reports whether a field of kind k stored as d consumes a
// numbered storage column.
func (k Kind) OccupiesColumn(d DataType) bool {
	return !k.ColumnCapped() && !d.Columnless()
}

func (k Kind) String() string {
	return string(k)
}
