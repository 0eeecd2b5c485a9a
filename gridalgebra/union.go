package gridalgebra

import "github.com/hayspec/haystack-core/value"

// Union concatenates a and b, keeping the first occurrence of each
// distinct id and dropping any later row (from either grid) that
// repeats an id already seen. Rows with no usable id tag are never
// deduplicated against anything, since there is nothing to match them
// by; every such row passes through.
func Union(a, b *value.Grid) *Result {
	out := newGridWithColumns(columnUnion(a, b))
	seen := make(map[string]bool)
	var warnings []string

	warnings = appendDeduped(out, a, seen, warnings)
	warnings = appendDeduped(out, b, seen, warnings)

	return &Result{Grid: out, Warnings: warnings}
}

func appendDeduped(out *value.Grid, g *value.Grid, seen map[string]bool, warnings []string) []string {
	for _, row := range g.Rows {
		idVal, ok := row.Get("id")
		if !ok {
			out.AddRow(row.Clone())
			continue
		}
		name, _, isRef := idVal.AsRef()
		if !isRef {
			warnings = append(warnings, "row's id tag is not a Ref, treated as unkeyed for union")
			out.AddRow(row.Clone())
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out.AddRow(row.Clone())
	}
	return warnings
}
