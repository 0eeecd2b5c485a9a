// Package trio implements the line-oriented Trio format: a sequence of
// paragraph-separated entities, each a set of "tagName: zincScalar" or
// bare "tagName" (marker) lines. Entities are separated by a line
// containing "---" or by a blank line; a value that needs more than one line
// continues on subsequent lines indented by exactly two spaces, chosen
// over a tab or a four-space convention for consistency with the
// two-space body indentation the rest of this codebase already favors
// (see DESIGN.md for this decision).
//
// Entities are decoded into Grid rows; the column set is the union of
// tag names seen across every entity, in first-appearance order. A row
// that omits a tag the document otherwise declares gets Null for it,
// the same convention the Zinc codec uses for a short row.
package trio

import (
	"fmt"
	"strings"

	"github.com/hayspec/haystack-core/value"
	"github.com/hayspec/haystack-core/zinc"
)

const separator = "---"

// Unmarshal decodes a Trio document into a Grid.
func Unmarshal(src string) (*value.Grid, error) {
	lines := strings.Split(src, "\n")

	var entities []*value.Dict
	var colOrder []string
	seenCols := make(map[string]bool)

	cur := value.NewDict()
	hasAny := false
	flush := func() {
		if hasAny {
			entities = append(entities, cur)
		}
		cur = value.NewDict()
		hasAny = false
	}

	i := 0
	for i < len(lines) {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == separator:
			flush()
			i++
			continue
		case trimmed == "":
			flush()
			i++
			continue
		case strings.HasPrefix(line, "  "):
			return nil, fmt.Errorf("trio: line %d: continuation line with no preceding tag", i+1)
		}

		name, rawVal, hasColon := splitTagLine(line)
		if name == "" {
			return nil, fmt.Errorf("trio: line %d: expected a tag name", i+1)
		}

		var valLines []string
		if hasColon {
			valLines = append(valLines, rawVal)
		}
		j := i + 1
		for j < len(lines) && strings.HasPrefix(lines[j], "  ") && strings.TrimSpace(lines[j]) != separator {
			valLines = append(valLines, strings.TrimPrefix(lines[j], "  "))
			j++
		}

		var v value.Value
		if !hasColon {
			v = value.Marker()
		} else {
			full := strings.TrimSpace(strings.Join(valLines, "\n"))
			parsed, err := zinc.ParseScalar(full)
			if err != nil {
				return nil, fmt.Errorf("trio: line %d: tag %q: %w", i+1, name, err)
			}
			v = parsed
		}

		cur.Set(name, v)
		if !seenCols[name] {
			seenCols[name] = true
			colOrder = append(colOrder, name)
		}
		hasAny = true
		i = j
	}
	flush()

	g := value.NewGrid()
	for _, name := range colOrder {
		if err := g.AddColumn(name, nil); err != nil {
			return nil, err
		}
	}
	for _, e := range entities {
		row := value.NewDict()
		for _, name := range colOrder {
			if v, ok := e.Get(name); ok {
				row.Set(name, v)
			} else {
				row.Set(name, value.Null())
			}
		}
		g.AddRow(row)
	}
	return g, nil
}

func splitTagLine(line string) (name, rest string, hasColon bool) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return strings.TrimSpace(line), "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}

// Marshal renders g as a Trio document: one entity per row, columns
// holding Null are omitted entirely rather than written as an empty
// value, since Trio has no positional column layout to preserve.
func Marshal(g *value.Grid) string {
	var b strings.Builder
	for i, row := range g.Rows {
		if i > 0 {
			b.WriteString(separator)
			b.WriteByte('\n')
		}
		for _, c := range g.Cols {
			v, _ := row.Get(c.Name)
			if v.IsNull() {
				continue
			}
			if v.Kind() == value.KindMarker {
				b.WriteString(c.Name)
				b.WriteByte('\n')
				continue
			}
			lit := zinc.WriteScalar(v)
			litLines := strings.Split(lit, "\n")
			b.WriteString(c.Name)
			b.WriteString(": ")
			b.WriteString(litLines[0])
			b.WriteByte('\n')
			for _, cont := range litLines[1:] {
				b.WriteString("  ")
				b.WriteString(cont)
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}
