package value

// Value is the tagged sum of every Haystack scalar/structured value.
// The zero Value is Null.
type Value struct {
	kind Kind

	boolVal bool
	num     float64
	unit    string // Number unit

	// text holds: Str/Uri content, Bin MIME type, XStr type name.
	text string
	// aux holds: Ref display string, XStr encoded payload.
	aux string

	refName string

	date Date
	time Time
	dt   DateTime
	geo  Coordinate

	list []Value
	dict *Dict
	grid *Grid
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.Kind() == KindNull }

// Null constructs the Null value. It is identical to the zero Value.
func Null() Value { return Value{kind: KindNull} }

// Marker constructs the singleton presence Marker value.
func Marker() Value { return Value{kind: KindMarker} }

// Remove constructs the tombstone Remove value, used by gridalgebra diffs
// to mark a tag for deletion.
func Remove() Value { return Value{kind: KindRemove} }

// NA constructs the "not available" sentinel.
func NA() Value { return Value{kind: KindNA} }

// Bool constructs a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// Num constructs a Number value with an optional unit (empty string for
// unitless). NaN and +/-Inf are representable and round-trip.
func Num(n float64, unit string) Value {
	return Value{kind: KindNumber, num: n, unit: unit}
}

// Str constructs a UTF-8 string value.
func Str(s string) Value { return Value{kind: KindStr, text: s} }

// Uri constructs a URI-tagged string value, distinct in literal form
// from Str.
func Uri(s string) Value { return Value{kind: KindUri, text: s} }

// NewRef constructs a Ref with an opaque name and optional human-readable
// display string. Ref equality compares name only; dis is advisory.
func NewRef(name, dis string) Value {
	return Value{kind: KindRef, refName: name, aux: dis}
}

// Bin constructs a MIME-tagged binary payload reference.
func Bin(mime string) Value { return Value{kind: KindBin, text: mime} }

// DateVal constructs a Date value.
func DateVal(d Date) Value { return Value{kind: KindDate, date: d} }

// TimeVal constructs a Time value.
func TimeVal(t Time) Value { return Value{kind: KindTime, time: t} }

// DateTimeVal constructs a DateTime value. The zone name is part of its
// identity, exactly like the offset carried in dt.Instant.
func DateTimeVal(dt DateTime) Value { return Value{kind: KindDateTime, dt: dt} }

// CoordVal constructs a Coordinate value.
func CoordVal(c Coordinate) Value { return Value{kind: KindCoord, geo: c} }

// XStr constructs a named extension scalar with an encoded payload.
func XStr(typeName, payload string) Value {
	return Value{kind: KindXStr, text: typeName, aux: payload}
}

// ListVal constructs an ordered List value. The slice is not copied; the
// caller must not mutate it afterwards.
func ListVal(items []Value) Value { return Value{kind: KindList, list: items} }

// DictVal constructs a Dict value wrapping d.
func DictVal(d *Dict) Value { return Value{kind: KindDict, dict: d} }

// GridVal constructs a nested Grid value.
func GridVal(g *Grid) Value { return Value{kind: KindGrid, grid: g} }

// AsBool returns the boolean payload and whether v is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.boolVal, true
}

// AsNumber returns the numeric payload and unit, and whether v is a
// Number.
func (v Value) AsNumber() (n float64, unit string, ok bool) {
	if v.Kind() != KindNumber {
		return 0, "", false
	}
	return v.num, v.unit, true
}

// AsStr returns the string payload for Str or Uri values.
func (v Value) AsStr() (string, bool) {
	switch v.Kind() {
	case KindStr, KindUri:
		return v.text, true
	default:
		return "", false
	}
}

// AsRef returns the Ref's name and display string.
func (v Value) AsRef() (name, dis string, ok bool) {
	if v.Kind() != KindRef {
		return "", "", false
	}
	return v.refName, v.aux, true
}

// AsBin returns the MIME type of a Bin value.
func (v Value) AsBin() (mime string, ok bool) {
	if v.Kind() != KindBin {
		return "", false
	}
	return v.text, true
}

// AsDate returns the Date payload.
func (v Value) AsDate() (Date, bool) {
	if v.Kind() != KindDate {
		return Date{}, false
	}
	return v.date, true
}

// AsTime returns the Time payload.
func (v Value) AsTime() (Time, bool) {
	if v.Kind() != KindTime {
		return Time{}, false
	}
	return v.time, true
}

// AsDateTime returns the DateTime payload.
func (v Value) AsDateTime() (DateTime, bool) {
	if v.Kind() != KindDateTime {
		return DateTime{}, false
	}
	return v.dt, true
}

// AsCoord returns the Coordinate payload.
func (v Value) AsCoord() (Coordinate, bool) {
	if v.Kind() != KindCoord {
		return Coordinate{}, false
	}
	return v.geo, true
}

// AsXStr returns the extension type name and encoded payload.
func (v Value) AsXStr() (typeName, payload string, ok bool) {
	if v.Kind() != KindXStr {
		return "", "", false
	}
	return v.text, v.aux, true
}

// AsList returns the underlying slice for a List value. The caller must
// not mutate the returned slice.
func (v Value) AsList() ([]Value, bool) {
	if v.Kind() != KindList {
		return nil, false
	}
	return v.list, true
}

// AsDict returns the underlying Dict for a Dict value.
func (v Value) AsDict() (*Dict, bool) {
	if v.Kind() != KindDict {
		return nil, false
	}
	return v.dict, true
}

// AsGrid returns the underlying Grid for a Grid value.
func (v Value) AsGrid() (*Grid, bool) {
	if v.Kind() != KindGrid {
		return nil, false
	}
	return v.grid, true
}

// Truthy reports whether v counts as "true-like" for filter path
// evaluation: present, non-Null, and not the boolean false.
func (v Value) Truthy() bool {
	switch v.Kind() {
	case KindNull, KindRemove:
		return false
	case KindBool:
		return v.boolVal
	default:
		return true
	}
}
