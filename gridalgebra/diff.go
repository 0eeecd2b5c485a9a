package gridalgebra

import "github.com/hayspec/haystack-core/value"

// Diff produces a patch such that Merge(a, Diff(a, b)).Grid's rows
// equal b's rows per id. A tag added or changed in b is carried as-is;
// a tag present in a but absent from b becomes a Remove tombstone; a
// row whose id appears only in b is carried in full as a new patch row.
//
// An id present in a but absent from b has no representation in the
// produced patch: Merge only ever overlays a patch row onto a matching
// base row or appends an unmatched one, it never deletes an entire row,
// so there is no patch shape that would make such a row disappear after
// merging. Diff leaves that row out of the patch rather than invent an
// operation Merge cannot apply; round-tripping an entity's removal is
// out of scope for this id-keyed, cell-wise algebra.
func Diff(a, b *value.Grid) *Result {
	aIdx, _, aWarn := idIndex(a)
	bIdx, bOrder, bWarn := idIndex(b)
	warnings := append(aWarn, bWarn...)

	out := newGridWithColumns(columnUnion(a, b))

	for _, name := range bOrder {
		bRow := b.Rows[bIdx[name]]
		if ai, ok := aIdx[name]; ok {
			patchRow := diffRow(a.Rows[ai], bRow)
			if patchRow.Len() == 0 {
				continue
			}
			idVal, _ := bRow.Get("id")
			patchRow.Set("id", idVal)
			out.AddRow(patchRow)
		} else {
			out.AddRow(bRow.Clone())
		}
	}
	return &Result{Grid: out, Warnings: warnings}
}

func diffRow(a, b *value.Dict) *value.Dict {
	patch := value.NewDict()
	for _, k := range b.Keys() {
		if k == "id" {
			continue
		}
		bv, _ := b.Get(k)
		if av, ok := a.Get(k); !ok || !value.Equal(av, bv) {
			patch.Set(k, bv)
		}
	}
	for _, k := range a.Keys() {
		if k == "id" {
			continue
		}
		if !b.Has(k) {
			patch.Set(k, value.Remove())
		}
	}
	return patch
}
