package gridalgebra

import "github.com/hayspec/haystack-core/value"

// Merge applies patch onto base: for each patch row matched by id,
// cell-wise overlay onto the corresponding base row (a Remove cell
// deletes the tag; a cell patch omits entirely leaves the base value
// untouched); a patch row whose id has no match in base is appended as
// a new entity, with any Remove cells it carries stripped (there is
// nothing in base for them to delete). Rows in base with no
// corresponding patch row pass through unchanged.
func Merge(base, patch *value.Grid) *Result {
	baseIdx, _, baseWarn := idIndex(base)
	patchIdx, patchOrder, patchWarn := idIndex(patch)
	warnings := append(baseWarn, patchWarn...)

	out := newGridWithColumns(columnUnion(base, patch))

	merged := make([]*value.Dict, len(base.Rows))
	for i, row := range base.Rows {
		merged[i] = row.Clone()
	}

	for _, name := range patchOrder {
		patchRow := patch.Rows[patchIdx[name]]
		if bi, ok := baseIdx[name]; ok {
			overlay(merged[bi], patchRow)
		} else {
			merged = append(merged, stripRemoves(patchRow))
		}
	}

	for _, row := range merged {
		out.AddRow(row)
	}
	return &Result{Grid: out, Warnings: warnings}
}

func overlay(base, patch *value.Dict) {
	for _, k := range patch.Keys() {
		v, _ := patch.Get(k)
		if v.Kind() == value.KindRemove {
			base.Delete(k)
			continue
		}
		base.Set(k, v)
	}
}

func stripRemoves(row *value.Dict) *value.Dict {
	out := value.NewDict()
	for _, k := range row.Keys() {
		v, _ := row.Get(k)
		if v.Kind() == value.KindRemove {
			continue
		}
		out.Set(k, v)
	}
	return out
}
