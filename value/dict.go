package value

import "sort"

// Dict is an insertion-ordered mapping from tag name to Value.
// Insertion order is preserved for deterministic output. A key that was
// never Set is distinct from a key Set to Null: Get's ok result tells
// the two apart.
type Dict struct {
	keys []string
	vals map[string]Value
}

// NewDict constructs an empty Dict.
func NewDict() *Dict {
	return &Dict{vals: make(map[string]Value)}
}

// Set assigns key to v, appending key to the insertion order the first
// time it is used.
func (d *Dict) Set(key string, v Value) {
	if d.vals == nil {
		d.vals = make(map[string]Value)
	}
	if _, exists := d.vals[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = v
}

// Get returns the value stored under key and whether key is present.
// An absent key reports (Null, false); a key explicitly Set to Null
// reports (Null, true).
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return Null(), false
	}
	v, ok := d.vals[key]
	return v, ok
}

// Has reports whether key is present in d, regardless of its value.
func (d *Dict) Has(key string) bool {
	if d == nil {
		return false
	}
	_, ok := d.vals[key]
	return ok
}

// Delete removes key from d, if present.
func (d *Dict) Delete(key string) {
	if d == nil {
		return
	}
	if _, ok := d.vals[key]; !ok {
		return
	}
	delete(d.vals, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the tag names in insertion order. The caller must not
// mutate the returned slice.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	return d.keys
}

// Len reports the number of tags in d.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Clone returns a deep-enough copy of d: keys and the top-level map are
// copied, but nested Values are shared (they are immutable anyway).
func (d *Dict) Clone() *Dict {
	if d == nil {
		return NewDict()
	}
	c := &Dict{
		keys: append([]string(nil), d.keys...),
		vals: make(map[string]Value, len(d.vals)),
	}
	for k, v := range d.vals {
		c.vals[k] = v
	}
	return c
}

// Equal reports whether d and o have the same tags mapped to Equal
// values. Insertion order does not affect equality.
func (d *Dict) Equal(o *Dict) bool {
	if d.Len() != o.Len() {
		return false
	}
	for _, k := range d.Keys() {
		dv, _ := d.Get(k)
		ov, ok := o.Get(k)
		if !ok || !Equal(dv, ov) {
			return false
		}
	}
	return true
}

// DictFromMap builds a Dict from a plain map, in an unspecified but
// deterministic (sorted) key order. Prefer Set for callers that need
// control over insertion order.
func DictFromMap(m map[string]Value) *Dict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := NewDict()
	for _, k := range keys {
		d.Set(k, m[k])
	}
	return d
}
