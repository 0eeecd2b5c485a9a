package filter

import "github.com/hayspec/haystack-core/value"

// Index resolves a Ref by name against a fixed entity set, letting the
// evaluator follow an a->b hop without every caller threading a lookup
// table through Eval by hand. Built once per Select/evaluation call via
// NewIndex, not mutated afterwards.
type Index struct {
	byName map[string]*value.Dict
}

// NewIndex builds an Index over entities, keyed by the Ref name found
// under their "id" tag. An entity with no id tag, or whose id is not a
// Ref, is not indexed and so cannot be resolved as the target of a hop.
func NewIndex(entities []*value.Dict) *Index {
	idx := &Index{byName: make(map[string]*value.Dict, len(entities))}
	for _, e := range entities {
		id, ok := e.Get("id")
		if !ok {
			continue
		}
		name, _, isRef := id.AsRef()
		if !isRef {
			continue
		}
		idx.byName[name] = e
	}
	return idx
}

func (idx *Index) lookup(name string) (*value.Dict, bool) {
	if idx == nil {
		return nil, false
	}
	d, ok := idx.byName[name]
	return d, ok
}
