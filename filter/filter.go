package filter

import "github.com/hayspec/haystack-core/value"

// Select evaluates expr against every row of g, treating g's rows as
// the entity set a Ref hop resolves against, and returns the indices of
// the matching rows in their original order.
func Select(g *value.Grid, expr Expr) []int {
	idx := NewIndex(g.Rows)
	var matches []int
	for i, row := range g.Rows {
		if expr.Eval(row, idx) {
			matches = append(matches, i)
		}
	}
	return matches
}
