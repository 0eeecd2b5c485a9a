// Package jsonio implements the tagged-sigil JSON encoding of a Grid:
// values that JSON can represent natively (Null, Bool, Str, List, Dict,
// nested Grid) are encoded directly, Marker, Remove and NA are encoded
// as a bare two-character sigil, and every other Value kind is encoded
// as a string carrying a two-character sigil prefix followed by its
// Zinc literal form, reusing the zinc package's shared scalar
// grammar (ParseScalar/WriteScalar) rather than a second, parallel
// literal syntax.
package jsonio

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/hayspec/haystack-core/value"
	"github.com/hayspec/haystack-core/zinc"
)

const (
	sigilMarker = "m:"
	sigilRemove = "-:"
	sigilNA     = "z:"
)

var literalSigils = []string{"n:", "u:", "r:", "b:", "d:", "h:", "t:", "c:", "x:"}

var reservedPrefixes = []string{sigilMarker, sigilRemove, sigilNA, "n:", "u:", "r:", "b:", "d:", "h:", "t:", "c:", "x:", "s:"}

type colPayload struct {
	Name string         `json:"name"`
	Meta map[string]any `json:"meta,omitempty"`
}

type gridPayload struct {
	Meta map[string]any   `json:"meta,omitempty"`
	Cols []colPayload     `json:"cols"`
	Rows []map[string]any `json:"rows"`
}

// Marshal renders g as indented tagged-sigil JSON.
func Marshal(g *value.Grid) ([]byte, error) {
	p, err := encodeGrid(g)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}

// Unmarshal decodes tagged-sigil JSON produced by Marshal (or a
// compatible encoder) into a Grid.
func Unmarshal(data []byte) (*value.Grid, error) {
	var p gridPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("jsonio: %w", err)
	}
	return decodeGrid(p)
}

func encodeGrid(g *value.Grid) (gridPayload, error) {
	p := gridPayload{
		Cols: make([]colPayload, len(g.Cols)),
		Rows: make([]map[string]any, len(g.Rows)),
	}
	if g.Meta != nil && g.Meta.Len() > 0 {
		m, err := encodeDict(g.Meta)
		if err != nil {
			return gridPayload{}, err
		}
		p.Meta = m
	}
	for i, c := range g.Cols {
		cp := colPayload{Name: c.Name}
		if c.Meta != nil && c.Meta.Len() > 0 {
			m, err := encodeDict(c.Meta)
			if err != nil {
				return gridPayload{}, err
			}
			cp.Meta = m
		}
		p.Cols[i] = cp
	}
	for i, row := range g.Rows {
		m, err := encodeDict(row)
		if err != nil {
			return gridPayload{}, err
		}
		p.Rows[i] = m
	}
	return p, nil
}

func encodeDict(d *value.Dict) (map[string]any, error) {
	out := make(map[string]any, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		ev, err := encodeValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = ev
	}
	return out, nil
}

func sigilFor(k value.Kind) string {
	switch k {
	case value.KindNumber:
		return "n:"
	case value.KindUri:
		return "u:"
	case value.KindRef:
		return "r:"
	case value.KindBin:
		return "b:"
	case value.KindDate:
		return "d:"
	case value.KindTime:
		return "h:"
	case value.KindDateTime:
		return "t:"
	case value.KindCoord:
		return "c:"
	case value.KindXStr:
		return "x:"
	}
	return ""
}

func escapeStrCollision(s string) string {
	for _, p := range reservedPrefixes {
		if strings.HasPrefix(s, p) {
			return "s:" + s
		}
	}
	return s
}

func encodeValue(v value.Value) (any, error) {
	switch v.Kind() {
	case value.KindNull:
		return nil, nil
	case value.KindMarker:
		return sigilMarker, nil
	case value.KindRemove:
		return sigilRemove, nil
	case value.KindNA:
		return sigilNA, nil
	case value.KindBool:
		b, _ := v.AsBool()
		return b, nil
	case value.KindNumber, value.KindUri, value.KindRef, value.KindBin,
		value.KindDate, value.KindTime, value.KindDateTime, value.KindCoord, value.KindXStr:
		return sigilFor(v.Kind()) + zinc.WriteScalar(v), nil
	case value.KindStr:
		s, _ := v.AsStr()
		return escapeStrCollision(s), nil
	case value.KindList:
		items, _ := v.AsList()
		out := make([]any, len(items))
		for i, it := range items {
			ev, err := encodeValue(it)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case value.KindDict:
		d, _ := v.AsDict()
		return encodeDict(d)
	case value.KindGrid:
		g, _ := v.AsGrid()
		return encodeGrid(g)
	default:
		return nil, fmt.Errorf("jsonio: unsupported kind %s", v.Kind())
	}
}

// EncodeLiteral renders v exactly the way Marshal encodes a cell value:
// natively for Null/Bool/Str, sigil-tagged for every other scalar kind.
// sqlfilter uses this so a translated comparison's bound parameter
// matches what Marshal actually put in the JSON column being queried.
func EncodeLiteral(v value.Value) (any, error) {
	return encodeValue(v)
}

func decodeGrid(p gridPayload) (*value.Grid, error) {
	g := value.NewGrid()
	if p.Meta != nil {
		d, err := decodeDict(p.Meta)
		if err != nil {
			return nil, err
		}
		g.Meta = d
	}
	for _, cp := range p.Cols {
		var meta *value.Dict
		if cp.Meta != nil {
			d, err := decodeDict(cp.Meta)
			if err != nil {
				return nil, err
			}
			meta = d
		}
		if err := g.AddColumn(cp.Name, meta); err != nil {
			return nil, err
		}
	}
	for _, rp := range p.Rows {
		d, err := decodeDict(rp)
		if err != nil {
			return nil, err
		}
		g.AddRow(d)
	}
	return g, nil
}

// decodeDict builds a Dict from a decoded JSON object in sorted key
// order: encoding/json's map[string]any loses the original field order,
// so there is no insertion order to recover. This is a deliberate
// consequence of using plain maps instead of a hand-rolled ordered-map
// unmarshaler.
func decodeDict(m map[string]any) (*value.Dict, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	d := value.NewDict()
	for _, k := range keys {
		v, err := decodeValue(m[k])
		if err != nil {
			return nil, fmt.Errorf("jsonio: tag %q: %w", k, err)
		}
		d.Set(k, v)
	}
	return d, nil
}

func decodeValue(raw any) (value.Value, error) {
	switch t := raw.(type) {
	case nil:
		return value.Null(), nil
	case bool:
		return value.Bool(t), nil
	case float64:
		return value.Num(t, ""), nil
	case string:
		switch t {
		case sigilMarker:
			return value.Marker(), nil
		case sigilRemove:
			return value.Remove(), nil
		case sigilNA:
			return value.NA(), nil
		}
		for _, sig := range literalSigils {
			if strings.HasPrefix(t, sig) {
				return zinc.ParseScalar(strings.TrimPrefix(t, sig))
			}
		}
		if strings.HasPrefix(t, "s:") {
			return value.Str(strings.TrimPrefix(t, "s:")), nil
		}
		return value.Str(t), nil
	case []any:
		items := make([]value.Value, len(t))
		for i, it := range t {
			v, err := decodeValue(it)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.ListVal(items), nil
	case map[string]any:
		if _, hasCols := t["cols"]; hasCols {
			if _, hasRows := t["rows"]; hasRows {
				b, err := json.Marshal(t)
				if err != nil {
					return value.Value{}, err
				}
				var gp gridPayload
				if err := json.Unmarshal(b, &gp); err != nil {
					return value.Value{}, err
				}
				g, err := decodeGrid(gp)
				if err != nil {
					return value.Value{}, err
				}
				return value.GridVal(g), nil
			}
		}
		d, err := decodeDict(t)
		if err != nil {
			return value.Value{}, err
		}
		return value.DictVal(d), nil
	default:
		return value.Value{}, fmt.Errorf("jsonio: unsupported JSON value %T", raw)
	}
}
