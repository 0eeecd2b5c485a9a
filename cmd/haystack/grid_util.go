package main

import "github.com/hayspec/haystack-core/value"

// projectRows builds a grid with g's exact column set, containing only
// the rows at the given indices, in the order given.
func projectRows(g *value.Grid, indices []int) *value.Grid {
	out := value.NewGrid()
	for _, c := range g.Cols {
		_ = out.AddColumn(c.Name, c.Meta)
	}
	for _, i := range indices {
		out.AddRow(g.Rows[i].Clone())
	}
	return out
}
