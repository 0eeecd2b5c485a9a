package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/value"
)

func TestDetectFormatFromExtension(t *testing.T) {
	assert.Equal(t, "json", detectFormat("grid.json"))
	assert.Equal(t, "csv", detectFormat("grid.csv"))
	assert.Equal(t, "trio", detectFormat("grid.trio"))
	assert.Equal(t, "zinc", detectFormat("grid.zinc"))
	assert.Equal(t, "zinc", detectFormat("grid"))
}

func TestLoadSaveGridRoundTripsAcrossFormats(t *testing.T) {
	g, err := value.NewBuilder().
		Column("id").Column("dis").
		Row("id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1")).
		Build()
	require.NoError(t, err)

	for _, format := range []string{"zinc", "json", "csv", "trio"} {
		encoded, err := saveGrid(g, format)
		require.NoError(t, err, format)
		decoded, err := loadGrid(encoded, format)
		require.NoError(t, err, format)
		require.Len(t, decoded.Rows, 1, format)
		dis, ok := decoded.Rows[0].Get("dis")
		require.True(t, ok, format)
		s, _ := dis.AsStr()
		assert.Equal(t, "AHU-1", s, format)
	}
}

func TestProjectRowsKeepsColumnsAndSelectedRowsOnly(t *testing.T) {
	g, err := value.NewBuilder().
		Column("id").Column("dis").
		Row("id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1")).
		Row("id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2")).
		Build()
	require.NoError(t, err)

	out := projectRows(g, []int{1})
	require.Len(t, out.Rows, 1)
	assert.Equal(t, g.ColumnNames(), out.ColumnNames())
	dis, _ := out.Rows[0].Get("dis")
	s, _ := dis.AsStr()
	assert.Equal(t, "AHU-2", s)
}
