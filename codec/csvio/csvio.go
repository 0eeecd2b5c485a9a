// Package csvio implements a lossy CSV projection of a Grid: a header
// row of column names, one data row per grid row, Marker rendered as
// the checkmark "✓", Null as an empty field, and any other non-trivial
// kind rendered in its Zinc literal form via the zinc package's shared
// scalar layer. CSV carries no type information of its own, so
// Unmarshal cannot recover anything this package did not already
// encode losslessly as a Zinc literal: round-tripping a grid through
// CSV and back is not expected to be lossless for every kind, only for
// the kinds the Zinc literal form alone can unambiguously re-parse as
// (grid-level and column-level metadata is dropped entirely; a flat
// header/data layout carries no side-channel for it).
package csvio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/hayspec/haystack-core/value"
	"github.com/hayspec/haystack-core/zinc"
)

const markerGlyph = "✓"

// TypeError reports an attempt to serialize a value this lossy format
// cannot represent. A nested Grid has no cell-shaped rendering under
// csvio's flat header/data layout, unlike jsonio and trio, which both
// carry a Grid's structure through to the wire; csvio rejects it rather
// than flattening it into an opaque multi-line literal a reader has no
// way to know is a grid at all.
type TypeError struct {
	Kind value.Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("csvio: cannot represent a %s value in a CSV cell", e.Kind)
}

// Marshal renders g as CSV: a header row of column names followed by
// one row per grid row.
func Marshal(g *value.Grid) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(g.ColumnNames()); err != nil {
		return nil, err
	}
	for _, row := range g.Rows {
		record := make([]string, len(g.Cols))
		for i, c := range g.Cols {
			v, _ := row.Get(c.Name)
			cell, err := encodeCell(v)
			if err != nil {
				return nil, err
			}
			record[i] = cell
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeCell(v value.Value) (string, error) {
	switch v.Kind() {
	case value.KindNull:
		return "", nil
	case value.KindMarker:
		return markerGlyph, nil
	case value.KindStr:
		s, _ := v.AsStr()
		return s, nil
	case value.KindGrid:
		return "", &TypeError{Kind: v.Kind()}
	default:
		return zinc.WriteScalar(v), nil
	}
}

// Unmarshal decodes a CSV document into a Grid whose columns carry no
// metadata: the header row becomes column names, and each field is
// decoded by the inverse of Marshal's cell encoding.
func Unmarshal(data []byte) (*value.Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csvio: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csvio: empty CSV document")
	}

	g := value.NewGrid()
	for _, name := range records[0] {
		if err := g.AddColumn(strings.TrimSpace(name), nil); err != nil {
			return nil, err
		}
	}
	for _, record := range records[1:] {
		row := value.NewDict()
		for i, col := range g.Cols {
			if i >= len(record) {
				row.Set(col.Name, value.Null())
				continue
			}
			v, err := decodeCell(record[i])
			if err != nil {
				return nil, fmt.Errorf("csvio: column %q: %w", col.Name, err)
			}
			row.Set(col.Name, v)
		}
		g.AddRow(row)
	}
	return g, nil
}

func decodeCell(field string) (value.Value, error) {
	switch field {
	case "":
		return value.Null(), nil
	case markerGlyph:
		return value.Marker(), nil
	}
	v, err := zinc.ParseScalar(field)
	if err != nil {
		// Not a recognized Zinc literal: treat the field as a plain
		// string, matching a lossy CSV's lack of type tagging.
		return value.Str(field), nil
	}
	return v, nil
}
