package value

import "strings"

// Compare orders a relative to b for the subset of Value kinds the
// filter grammar allows in a comparison: two Numbers with the same unit
// compare numerically, two Strs/Uris compare lexicographically by code
// point, two DateTimes compare by instant, and two Dates or Times
// compare calendrically. ok is false whenever the comparison is not
// defined — mismatched kinds, mismatched Number units, or a kind that
// has no ordering (Bool, Marker, Ref, ...) — in which case the filter
// evaluator must treat the comparison as false rather than erroring.
func Compare(a, b Value) (result int, ok bool) {
	if a.Kind() != b.Kind() {
		return 0, false
	}
	switch a.Kind() {
	case KindNumber:
		if a.unit != b.unit {
			return 0, false
		}
		switch {
		case a.num < b.num:
			return -1, true
		case a.num > b.num:
			return 1, true
		case a.num == b.num:
			return 0, true
		default:
			// at least one operand is NaN
			return 0, false
		}
	case KindStr, KindUri:
		return strings.Compare(a.text, b.text), true
	case KindDate:
		return a.date.Compare(b.date), true
	case KindTime:
		return a.time.Compare(b.time), true
	case KindDateTime:
		return a.dt.Compare(b.dt), true
	default:
		return 0, false
	}
}
