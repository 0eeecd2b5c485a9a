package value

import "fmt"

// Column is a single grid column definition: a name plus column-level
// metadata. Column names are identifiers and unique within a Grid.
type Column struct {
	Name string
	Meta *Dict
}

// Grid is the primary Haystack data container: grid-level metadata, an
// ordered sequence of column definitions, and an ordered sequence of row
// Dicts. Grids are built once by a codec or a Builder and not mutated in
// place afterwards by core APIs.
type Grid struct {
	Meta *Dict
	Cols []Column
	Rows []*Dict
}

// SchemaError reports a structural problem with a Grid: a duplicate
// column name or a missing required header.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string { return "schema error: " + e.Msg }

// NewGrid constructs an empty Grid with fresh metadata.
func NewGrid() *Grid {
	return &Grid{Meta: NewDict()}
}

// AddColumn appends a column definition, rejecting a name already
// declared in the grid.
func (g *Grid) AddColumn(name string, meta *Dict) error {
	for _, c := range g.Cols {
		if c.Name == name {
			return &SchemaError{Msg: fmt.Sprintf("duplicate column %q", name)}
		}
	}
	if meta == nil {
		meta = NewDict()
	}
	g.Cols = append(g.Cols, Column{Name: name, Meta: meta})
	return nil
}

// AddRow appends row to the grid's row sequence. A nil row is treated as
// an empty Dict.
func (g *Grid) AddRow(row *Dict) {
	if row == nil {
		row = NewDict()
	}
	g.Rows = append(g.Rows, row)
}

// ColumnNames returns the grid's column names in declaration order.
func (g *Grid) ColumnNames() []string {
	names := make([]string, len(g.Cols))
	for i, c := range g.Cols {
		names[i] = c.Name
	}
	return names
}

// FindColumn looks up a column definition by name.
func (g *Grid) FindColumn(name string) (Column, bool) {
	for _, c := range g.Cols {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Cell returns the value of column in the row at index idx. A row that
// omits the column, or an out-of-range index, yields Null.
func (g *Grid) Cell(idx int, column string) Value {
	if idx < 0 || idx >= len(g.Rows) {
		return Null()
	}
	v, _ := g.Rows[idx].Get(column)
	return v
}

// Equal reports whether g and o have equal metadata, identical column
// names/metadata in the same order, and identical rows in the same
// order.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if !dictEqualNilable(g.Meta, o.Meta) {
		return false
	}
	if len(g.Cols) != len(o.Cols) {
		return false
	}
	for i, c := range g.Cols {
		oc := o.Cols[i]
		if c.Name != oc.Name || !dictEqualNilable(c.Meta, oc.Meta) {
			return false
		}
	}
	if len(g.Rows) != len(o.Rows) {
		return false
	}
	for i, r := range g.Rows {
		if !dictEqualNilable(r, o.Rows[i]) {
			return false
		}
	}
	return true
}

func dictEqualNilable(a, b *Dict) bool {
	if a == nil {
		a = NewDict()
	}
	if b == nil {
		b = NewDict()
	}
	return a.Equal(b)
}

// Builder accumulates columns, then rows, into a Grid. Columns must all
// be declared before the first row is added is not enforced (Zinc
// permits row cells beyond declared columns to be rejected by codecs,
// not the builder), but AddColumn still rejects duplicate names.
type Builder struct {
	grid *Grid
	err  error
}

// NewBuilder starts a new Grid under construction.
func NewBuilder() *Builder {
	return &Builder{grid: NewGrid()}
}

// Meta sets a grid-level metadata tag.
func (b *Builder) Meta(key string, v Value) *Builder {
	b.grid.Meta.Set(key, v)
	return b
}

// Column declares a column with no column-level metadata.
func (b *Builder) Column(name string) *Builder {
	return b.ColumnMeta(name, nil)
}

// ColumnMeta declares a column with the given metadata.
func (b *Builder) ColumnMeta(name string, meta *Dict) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.grid.AddColumn(name, meta); err != nil {
		b.err = err
	}
	return b
}

// Row appends a row built from successive key/value pairs.
func (b *Builder) Row(pairs ...any) *Builder {
	if b.err != nil {
		return b
	}
	if len(pairs)%2 != 0 {
		b.err = fmt.Errorf("grid: Row requires an even number of key/value arguments")
		return b
	}
	row := NewDict()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			b.err = fmt.Errorf("grid: Row key at position %d is not a string", i)
			return b
		}
		val, ok := pairs[i+1].(Value)
		if !ok {
			b.err = fmt.Errorf("grid: Row value for %q is not a value.Value", key)
			return b
		}
		row.Set(key, val)
	}
	b.grid.AddRow(row)
	return b
}

// RowDict appends a pre-built row Dict.
func (b *Builder) RowDict(row *Dict) *Builder {
	if b.err != nil {
		return b
	}
	b.grid.AddRow(row)
	return b
}

// Build finalizes the Grid, returning the first error encountered during
// construction, if any.
func (b *Builder) Build() (*Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.grid, nil
}
