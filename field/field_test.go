package field

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesDefaultDataType(t *testing.T) {
	assert.Equal(t, DataTypeText, New("t", "Title", "title", KindText).DataType)
	assert.Equal(t, DataTypeLongText, New("t", "Body", "body", KindWysiwyg).DataType)
	assert.Equal(t, DataTypeSystem, New("t", "Host", "host", KindHostFolder).DataType)
	assert.Equal(t, DataType(""), New("t", "X", "x", Kind("nope")).DataType)
}

func TestWithReturnsCopy(t *testing.T) {
	f := New("t", "Title", "title", KindText)
	g := f.WithInode("abc").WithDBColumn("text1").WithIndexed(true)
	assert.Empty(t, f.Inode)
	assert.Empty(t, f.DBColumn)
	assert.False(t, f.Indexed)
	assert.Equal(t, "abc", g.Inode)
	assert.Equal(t, "text1", g.DBColumn)
	assert.True(t, g.Indexed)
}

func TestNeedsIndex(t *testing.T) {
	f := New("t", "Title", "title", KindText)
	assert.False(t, f.NeedsIndex())
	f.Searchable = true
	assert.True(t, f.NeedsIndex())
	f.Searchable = false
	f.Listed = true
	assert.True(t, f.NeedsIndex())
	assert.True(t, New("t", "Host", "host", KindHostFolder).NeedsIndex())
}

func TestKinds(t *testing.T) {
	for _, k := range Kinds() {
		require.True(t, k.Valid())
		require.NotEmpty(t, k.AcceptedDataTypes(), k)
		for _, dt := range k.AcceptedDataTypes() {
			assert.True(t, dt.Valid(), "%s accepts unknown data type %s", k, dt)
		}
		if k.ColumnCapped() {
			assert.False(t, k.OccupiesColumn(k.DefaultDataType()), k)
		}
	}
	assert.True(t, KindText.Accepts(DataTypeInteger))
	assert.False(t, KindText.Accepts(DataTypeDate))
	assert.True(t, KindHostFolder.OnePerContentType())
	assert.True(t, KindHostFolder.ColumnCapped())
	assert.True(t, KindTag.ColumnCapped())
	assert.False(t, KindTag.OnePerContentType())
	assert.True(t, KindText.OccupiesColumn(DataTypeText))
	assert.False(t, KindConstant.OccupiesColumn(DataTypeConstant))
	assert.False(t, Kind("nope").Valid())
	assert.False(t, Kind("nope").Accepts(DataTypeText))
}

func TestDataTypeFromColumn(t *testing.T) {
	assert.Equal(t, DataTypeText, DataTypeFromColumn("text12"))
	assert.Equal(t, DataTypeLongText, DataTypeFromColumn("text_area3"))
	assert.Equal(t, DataTypeInteger, DataTypeFromColumn("integer1"))
	assert.Equal(t, DataTypeSystem, DataTypeFromColumn("system_field"))
	assert.Equal(t, DataTypeConstant, DataTypeFromColumn("constant"))
	assert.Equal(t, DataType(""), DataTypeFromColumn("blob4"))
	assert.True(t, DataTypeSectionDivider.Columnless())
	assert.False(t, DataTypeBool.Columnless())
}

func TestRoundToSecond(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	in := time.Date(2024, 1, 1, 12, 0, 0, 600_000_000, loc)
	out := RoundToSecond(in)
	assert.Equal(t, time.UTC, out.Location())
	assert.Equal(t, time.Date(2024, 1, 1, 11, 0, 1, 0, time.UTC), out)
}

func TestStorageFailureWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := StorageFailure(cause, "insert field")
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, err, StorageFailure(err, "commit"))
	assert.NoError(t, StorageFailure(nil, "noop"))
}

func TestVariableName(t *testing.T) {
	assert.Equal(t, "firstName", VariableName("first_name"))
	assert.Equal(t, "firstName", VariableName("First-Name"))
	assert.Equal(t, "firstName", VariableName("First Name"))
	assert.Equal(t, "f2ndLine", VariableName("2nd line"))
	assert.Equal(t, "lineDivider", VariableName("line_divider"))
	assert.Equal(t, "field", VariableName("__"))
}

func TestKindsOrderIsStable(t *testing.T) {
	first := Kinds()
	require.Len(t, first, len(kinds))
	assert.Equal(t, KindText, first[0])
	assert.Equal(t, KindRelationshipsTab, first[len(first)-1])
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Kinds())
	}
	seen := map[Kind]bool{}
	for _, k := range first {
		assert.False(t, seen[k], "%s listed twice", k)
		seen[k] = true
	}
}
