// Package gridalgebra implements id-keyed grid operations: Merge, Diff,
// and Union over entity rows. A row's identity is its "id" tag, which
// must be a Ref. In Merge and Diff, rows with no id tag, or a duplicate
// id within the same grid, are reported as a non-fatal warning rather
// than an error, a "classify, don't fail" posture toward schema
// anomalies; Union passes rows with no id tag through and drops
// repeated ids without a warning.
package gridalgebra

import "github.com/hayspec/haystack-core/value"

// Result wraps a produced Grid together with any non-fatal anomalies
// noticed while building it.
type Result struct {
	Grid     *value.Grid
	Warnings []string
}

// idIndex maps an entity's Ref-typed "id" tag name to its row index in
// g, in first-appearance order. Rows with no id, or whose id is not a
// Ref, are skipped and reported as warnings.
func idIndex(g *value.Grid) (index map[string]int, order []string, warnings []string) {
	index = make(map[string]int, len(g.Rows))
	for i, row := range g.Rows {
		idVal, ok := row.Get("id")
		if !ok {
			warnings = append(warnings, "row has no id tag, excluded from id-keyed operations")
			continue
		}
		name, _, isRef := idVal.AsRef()
		if !isRef {
			warnings = append(warnings, "row's id tag is not a Ref, excluded from id-keyed operations")
			continue
		}
		if _, dup := index[name]; dup {
			warnings = append(warnings, "duplicate id \""+name+"\", only the first occurrence is used")
			continue
		}
		index[name] = i
		order = append(order, name)
	}
	return index, order, warnings
}

func columnUnion(grids ...*value.Grid) []string {
	seen := make(map[string]bool)
	var order []string
	for _, g := range grids {
		for _, c := range g.Cols {
			if !seen[c.Name] {
				seen[c.Name] = true
				order = append(order, c.Name)
			}
		}
	}
	return order
}

func newGridWithColumns(names []string) *value.Grid {
	g := value.NewGrid()
	for _, n := range names {
		g.AddColumn(n, nil)
	}
	return g
}
