package zinc

import (
	"strings"

	"github.com/hayspec/haystack-core/value"
)

// Emit renders g as canonical Zinc v3 text. Column order and row order
// are exactly as declared on g; Emit always writes ver:"3.0" regardless
// of which version the source document declared.
func Emit(g *value.Grid) string {
	var b strings.Builder
	writeGridBody(&b, g)
	return b.String()
}

func writeGridBody(b *strings.Builder, g *value.Grid) {
	b.WriteString(`ver:"3.0"`)
	writeMetaTags(b, g.Meta)
	b.WriteByte('\n')
	for i, c := range g.Cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(c.Name)
		writeMetaTags(b, c.Meta)
	}
	b.WriteByte('\n')
	for _, row := range g.Rows {
		for i, c := range g.Cols {
			if i > 0 {
				b.WriteByte(',')
			}
			v, _ := row.Get(c.Name)
			b.WriteString(WriteScalar(v))
		}
		b.WriteByte('\n')
	}
}

func writeMetaTags(b *strings.Builder, meta *value.Dict) {
	if meta == nil {
		return
	}
	for _, k := range meta.Keys() {
		v, _ := meta.Get(k)
		b.WriteByte(' ')
		b.WriteString(k)
		if v.Kind() != value.KindMarker {
			b.WriteByte(':')
			b.WriteString(WriteScalar(v))
		}
	}
}
