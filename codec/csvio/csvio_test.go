package csvio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/value"
)

func TestMarshalUnmarshalBasic(t *testing.T) {
	g, err := value.NewBuilder().
		Column("dis").
		Column("rooftop").
		Column("note").
		Row("dis", value.Str("Pump 1"), "rooftop", value.Marker(), "note", value.Null()).
		Row("dis", value.Str("Pump 2"), "rooftop", value.Null(), "note", value.Str("spare")).
		Build()
	require.NoError(t, err)

	data, err := Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), "✓")

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.Len(t, back.Rows, 2)

	dis0, _ := back.Cell(0, "dis").AsStr()
	assert.Equal(t, "Pump 1", dis0)
	assert.Equal(t, value.KindMarker, back.Cell(0, "rooftop").Kind())
	assert.True(t, back.Cell(1, "rooftop").IsNull())
}

func TestMarshalRejectsNestedGridWithTypeError(t *testing.T) {
	inner, err := value.NewBuilder().Column("dis").Row("dis", value.Str("Inner")).Build()
	require.NoError(t, err)
	g, err := value.NewBuilder().Column("history").Row("history", value.GridVal(inner)).Build()
	require.NoError(t, err)

	_, err = Marshal(g)
	require.Error(t, err)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, value.KindGrid, typeErr.Kind)
}

func TestNumberLiteralRoundTripsThroughCSV(t *testing.T) {
	g, err := value.NewBuilder().Column("load").Row("load", value.Num(154, "kg")).Build()
	require.NoError(t, err)

	data, err := Marshal(g)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)

	n, unit, ok := back.Cell(0, "load").AsNumber()
	require.True(t, ok)
	assert.Equal(t, 154.0, n)
	assert.Equal(t, "kg", unit)
}

func TestColumnMetadataIsDroppedByCSV(t *testing.T) {
	meta := value.NewDict()
	meta.Set("dis", value.Str("Display Name"))
	g, err := value.NewBuilder().ColumnMeta("dis", meta).Row("dis", value.Str("x")).Build()
	require.NoError(t, err)

	data, err := Marshal(g)
	require.NoError(t, err)
	back, err := Unmarshal(data)
	require.NoError(t, err)

	col, ok := back.FindColumn("dis")
	require.True(t, ok)
	assert.Equal(t, 0, col.Meta.Len(), "CSV has no side channel for column metadata")
}
