package trio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/value"
)

func TestUnmarshalTwoEntities(t *testing.T) {
	src := "id: @p1\ndis: \"Pump 1\"\nload: 154kg\nrooftop\n---\nid: @p2\ndis: \"Pump 2\"\n"
	g, err := Unmarshal(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "dis", "load", "rooftop"}, g.ColumnNames())
	require.Len(t, g.Rows, 2)

	name, _, ok := g.Cell(0, "id").AsRef()
	require.True(t, ok)
	assert.Equal(t, "p1", name)
	assert.Equal(t, value.KindMarker, g.Cell(0, "rooftop").Kind())
	assert.True(t, g.Cell(1, "rooftop").IsNull(), "an entity that never mentions rooftop gets Null")
}

func TestUnmarshalEntitiesSeparatedByBlankLine(t *testing.T) {
	src := "id: @p1\ndis: \"Pump 1\"\n\nid: @p2\ndis: \"Pump 2\"\n"
	g, err := Unmarshal(src)
	require.NoError(t, err)
	require.Len(t, g.Rows, 2)

	name, _, ok := g.Cell(0, "id").AsRef()
	require.True(t, ok)
	assert.Equal(t, "p1", name)
	name, _, ok = g.Cell(1, "id").AsRef()
	require.True(t, ok)
	assert.Equal(t, "p2", name)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	g, err := value.NewBuilder().
		Column("dis").
		Column("rooftop").
		Row("dis", value.Str("Pump 1"), "rooftop", value.Marker()).
		Row("dis", value.Str("Pump 2"), "rooftop", value.Null()).
		Build()
	require.NoError(t, err)

	doc := Marshal(g)
	back, err := Unmarshal(doc)
	require.NoError(t, err)

	require.Len(t, back.Rows, 2)
	dis0, _ := back.Cell(0, "dis").AsStr()
	assert.Equal(t, "Pump 1", dis0)
	assert.Equal(t, value.KindMarker, back.Cell(0, "rooftop").Kind())
}

func TestMultiLineValueContinuation(t *testing.T) {
	inner, err := value.NewBuilder().Column("x").Row("x", value.Num(1, "")).Build()
	require.NoError(t, err)
	g, err := value.NewBuilder().Column("hist").Row("hist", value.GridVal(inner)).Build()
	require.NoError(t, err)

	doc := Marshal(g)
	assert.Contains(t, doc, "\n  ", "a literal form spanning lines must continue with two-space indent")

	back, err := Unmarshal(doc)
	require.NoError(t, err)
	nested, ok := back.Cell(0, "hist").AsGrid()
	require.True(t, ok)
	n, _, ok := nested.Cell(0, "x").AsNumber()
	require.True(t, ok)
	assert.Equal(t, 1.0, n)
}

func TestContinuationWithoutPrecedingTagIsError(t *testing.T) {
	_, err := Unmarshal("  stray continuation\n")
	require.Error(t, err)
}
