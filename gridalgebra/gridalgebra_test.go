package gridalgebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayspec/haystack-core/value"
)

func buildGrid(t *testing.T, rows ...[]any) *value.Grid {
	t.Helper()
	b := value.NewBuilder().Column("id").Column("dis").Column("rooftop").Column("load")
	for _, r := range rows {
		b = b.Row(r...)
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func rowByID(t *testing.T, g *value.Grid, id string) *value.Dict {
	t.Helper()
	for _, row := range g.Rows {
		idVal, ok := row.Get("id")
		require.True(t, ok)
		name, _, isRef := idVal.AsRef()
		require.True(t, isRef)
		if name == id {
			return row
		}
	}
	t.Fatalf("no row with id %q", id)
	return nil
}

func TestMergeOverlaysCellsAndAppendsUnmatched(t *testing.T) {
	base := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW")},
		[]any{"id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW")},
	)
	patch := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1 Renamed"), "rooftop", value.Remove(), "load", value.Null()},
		[]any{"id", value.NewRef("ahu3", ""), "dis", value.Str("AHU-3"), "rooftop", value.Null(), "load", value.Remove()},
	)

	res := Merge(base, patch)
	require.Len(t, res.Grid.Rows, 3)

	ahu1 := rowByID(t, res.Grid, "ahu1")
	dis, _ := ahu1.Get("dis")
	s, _ := dis.AsStr()
	assert.Equal(t, "AHU-1 Renamed", s)
	assert.False(t, ahu1.Has("rooftop"), "Remove cell deletes the tag from the matched base row")
	loadVal, ok := ahu1.Get("load")
	require.True(t, ok)
	assert.True(t, loadVal.IsNull(), "a patch cell that is Null (not Remove) overwrites, it does not leave base untouched")

	ahu2 := rowByID(t, res.Grid, "ahu2")
	dis2, _ := ahu2.Get("dis")
	s2, _ := dis2.AsStr()
	assert.Equal(t, "AHU-2", s2, "row with no patch entry passes through unchanged")

	ahu3 := rowByID(t, res.Grid, "ahu3")
	assert.False(t, ahu3.Has("load"), "Remove cell on an unmatched new row is stripped, not stored literally")
}

func TestDiffThenMergeRoundTrips(t *testing.T) {
	a := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW")},
		[]any{"id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW")},
	)
	b := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1 v2"), "load", value.Num(12, "kW")},
		[]any{"id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW")},
		[]any{"id", value.NewRef("ahu3", ""), "dis", value.Str("AHU-3"), "rooftop", value.Marker(), "load", value.Num(6, "kW")},
	)

	patch := Diff(a, b)
	merged := Merge(a, patch.Grid)

	got1 := rowByID(t, merged.Grid, "ahu1")
	dis1, _ := got1.Get("dis")
	s1, _ := dis1.AsStr()
	assert.Equal(t, "AHU-1 v2", s1)
	assert.False(t, got1.Has("rooftop"), "rooftop dropped between a and b becomes a Remove tombstone in the patch")

	got3 := rowByID(t, merged.Grid, "ahu3")
	assert.True(t, got3.Has("rooftop"))

	require.Len(t, merged.Grid.Rows, 3)
}

func TestDiffOmitsEntityDeletedFromB(t *testing.T) {
	a := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW")},
		[]any{"id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW")},
	)
	b := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1"), "rooftop", value.Marker(), "load", value.Num(12, "kW")},
	)

	patch := Diff(a, b)
	for _, row := range patch.Grid.Rows {
		idVal, _ := row.Get("id")
		name, _, _ := idVal.AsRef()
		assert.NotEqual(t, "ahu2", name, "a row dropped entirely from b has no representation in the patch")
	}

	merged := Merge(a, patch.Grid)
	_, stillThere := func() (*value.Dict, bool) {
		for _, row := range merged.Grid.Rows {
			idVal, _ := row.Get("id")
			name, _, _ := idVal.AsRef()
			if name == "ahu2" {
				return row, true
			}
		}
		return nil, false
	}()
	assert.True(t, stillThere, "merging a's diff-from-b patch back onto a cannot delete ahu2, a known scope limit")
}

func TestUnionDedupesByIDKeepingFirstOccurrence(t *testing.T) {
	a := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1 from a"), "rooftop", value.Marker(), "load", value.Num(12, "kW")},
	)
	b := buildGrid(t,
		[]any{"id", value.NewRef("ahu1", ""), "dis", value.Str("AHU-1 from b"), "rooftop", value.Null(), "load", value.Num(99, "kW")},
		[]any{"id", value.NewRef("ahu2", ""), "dis", value.Str("AHU-2"), "rooftop", value.Null(), "load", value.Num(4, "kW")},
	)

	res := Union(a, b)
	require.Len(t, res.Grid.Rows, 2)

	got1 := rowByID(t, res.Grid, "ahu1")
	dis1, _ := got1.Get("dis")
	s1, _ := dis1.AsStr()
	assert.Equal(t, "AHU-1 from a", s1, "the first occurrence of a repeated id wins, later ones are dropped")
}

func TestUnionPassesThroughUnkeyedRowsUndeduped(t *testing.T) {
	a, err := value.NewBuilder().Column("dis").
		Row("dis", value.Str("orphan 1")).
		Row("dis", value.Str("orphan 2")).
		Build()
	require.NoError(t, err)
	b, err := value.NewBuilder().Column("dis").Row("dis", value.Str("orphan 3")).Build()
	require.NoError(t, err)

	res := Union(a, b)
	assert.Len(t, res.Grid.Rows, 3, "rows without a usable id tag are never deduplicated against each other")
}
